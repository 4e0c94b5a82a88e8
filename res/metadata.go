package res

const (
	AppName          = "reel"
	DisplayName      = "Reel"
	AppVersion       = "0.1.0"
	AppVersionTag    = "v" + AppVersion
	ConfigFile       = "config.toml"
	GithubURL        = "https://github.com/reelplayer/reel"
	LatestReleaseURL = GithubURL + "/releases/latest"
	Copyright        = "Copyright © 2026 the Reel contributors"
)

var (
	WhatsAdded = `
## Added
* Playlist filter and shuffle
* Recently played files
* Keyboard shortcuts dialog`
)
