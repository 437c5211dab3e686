// Package navconfig loads a declarative YAML description of an app's
// navigation surface: deep-link schemes and host, route table, tab set,
// and stack limits. The loaded Config is validated and then applied to
// a deeplink.Parser, which keeps route registration out of application
// code.
//
// Example config:
//
//	schemes: [myapp]
//	host: app.example.com
//	max_depth: 20
//	tabs: [home, search, profile]
//	routes:
//	  - pattern: /home
//	    path: /home
//	    title: Home
//	  - pattern: /profile/:userId
//	    path: /profile
//	    title: Profile
//	  - pattern: /paywall
//	    path: /paywall
//	    modal: sheet
package navconfig
