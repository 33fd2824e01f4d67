// Package services implements the HTTP clients behind the [Catalog], [Classifier] and [PreviewLookup] interfaces.
//
// # Backend
//
// [BackendService] wraps [APIService] and speaks the backend's JSON API: /search, /artist_tracks and /mbti.
// It is both a Catalog and the Classifier.
//
// # Spotify Implementation
//
// [SpotifyCatalog] queries the Spotify Web API directly with client credentials.
// The clientcredentials client fetches and refreshes app tokens on demand; no user authorization is involved.
// Artist names are joined with ", " and the first album or artist image is used.
//
// # iTunes
//
// [ITunesService] resolves preview URLs with the iTunes Search API, rate limited with [rate.Limiter].
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAPIRequest] : search, drilldown or lookup request failed (transport, status or decoding)
//   - [shared.ErrClassificationFailed] : POST /mbti failed for any reason
//   - [shared.ErrMissingCredentials] : Spotify client credentials absent
package services
