// Package route defines the value types shared by every navigation
// component: the Route destination contract, a plain ordered-list builder,
// and the typed rejection reasons reported by guarded operations.
//
// A Route is an immutable value identified by its Path. Two routes are the
// same destination when their paths are equal; titles, presentation hints,
// and params are carried through the engine untouched.
//
//	profile := route.New("/profile",
//	    route.WithTitle("Profile"),
//	    route.WithParam("user_id", "42"),
//	)
//
// Rejections are never errors. Operations that decline to mutate state
// report a [Rejection] with a typed [Reason] instead of returning or
// panicking with an error value.
package route
