package ui

import (
	"placerank/internal/app/live"
	"placerank/internal/app/place"
	"placerank/internal/client/api"
	"placerank/internal/client/livefeed"
)

// sessionLoadedMsg fires once the persisted session has been restored.
type sessionLoadedMsg struct{}

// authDoneMsg carries the result of sign-in or registration.
type authDoneMsg struct {
	result api.AuthResult
	err    error
}

// placesMsg carries a fetched place listing.
type placesMsg struct {
	places []place.Place
	err    error
}

// placeDetailMsg carries one place with its comments.
type placeDetailMsg struct {
	detail api.PlaceDetail
	err    error
}

// profileMsg carries the account profile with its activity.
type profileMsg struct {
	result api.ProfileResult
	err    error
}

// profileSavedMsg carries the result of a profile update round trip.
type profileSavedMsg struct {
	result api.UpdateResult
	err    error
}

// placeSavedMsg carries a created or updated place.
type placeSavedMsg struct {
	place place.Place
	err   error
}

// editPlaceMsg asks the app to open the place form prefilled with an
// owned place.
type editPlaceMsg struct {
	place place.Place
}

// placeDeletedMsg fires after an owned place was removed.
type placeDeletedMsg struct {
	id  string
	err error
}

// ratedMsg carries a place with its refreshed rating aggregate.
type ratedMsg struct {
	place place.Place
	err   error
}

// commentedMsg carries a newly posted comment.
type commentedMsg struct {
	comment place.Comment
	err     error
}

// liveConnectedMsg carries an established live feed subscription.
type liveConnectedMsg struct {
	listener *livefeed.Listener
}

// liveMsg is one event from the live feed.
type liveMsg struct {
	event live.Event
}

// liveClosedMsg fires when the live feed connection ends.
type liveClosedMsg struct {
	err error
}
