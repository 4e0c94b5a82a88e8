package theme

const defaultThemeFile = `[ReelTheme]
Name = "Default"
Version = "0.1"
SupportsDark = true
SupportsLight = true

[DarkColors]
ControlsBackground = "#1c1c1eff"
NowPlayingBackground = "#101012ff"
Background = "#161618ff"
Button = "#2a2a2eff"
DisabledButton = "#222224ff"
Disabled = "#5c5c60ff"
Foreground = "#e6e6e8ff"
Hover = "#ffffff14"
InputBackground = "#222226ff"
MenuBackground = "#242428ff"
OverlayBackground = "#202024ff"
Primary = "#e8a23aff"
Selection = "#e8a23a55"
Separator = "#2e2e32ff"

[LightColors]
ControlsBackground = "#ececeeff"
NowPlayingBackground = "#dcdce0ff"
Background = "#f7f7f8ff"
Button = "#e2e2e6ff"
DisabledButton = "#ececeeff"
Disabled = "#a8a8acff"
Foreground = "#1a1a1cff"
Hover = "#0000000f"
InputBackground = "#ffffffff"
MenuBackground = "#fafafaff"
OverlayBackground = "#f4f4f6ff"
Primary = "#c7801aff"
Selection = "#c7801a44"
Separator = "#d6d6daff"
`
