// Package tabs coordinates per-tab navigation: each tab owns an
// independent route stack created lazily on first use, plus badge, lock,
// and visibility flags.
//
// Selecting a locked or hidden tab is a no-op. Re-selecting the current
// tab within the double-tap window (300ms by default) pops that tab's
// stack to root instead of switching — the familiar "tap the tab again
// to go home" behavior.
//
//	ts := tabs.New("home")
//	ts.Push("home", route.New("/feed"))
//	ts.Select("search")
//	ts.SetBadgeCount("inbox", 3)
//
// Tab stacks share no state with each other; each one can be reasoned
// about as its own single-threaded state machine.
package tabs
