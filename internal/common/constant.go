package common

// Storage keys. The values stored under them are JSON documents.
const (
	UsersKey        = "users"
	AdsKey          = "ads"
	LoggedInUserKey = "loggedInUser"
)

// DefaultPlaceholderImageURL is used when an ad has no image of its own.
const DefaultPlaceholderImageURL = "https://via.placeholder.com/300x200?text=No+Image"
