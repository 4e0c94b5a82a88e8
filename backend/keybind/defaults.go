package keybind

// DefaultConfig holds the compiled-in bindings. User bindings for the
// same trigger take priority. Commands prefixed with
// "script-message reel-action" are handled by the application rather
// than the engine.
const DefaultConfig = `# playback
SPACE cycle pause
p cycle pause
MOUSE_BTN2 cycle pause
s stop
q quit
ctrl+q quit
. frame-step
, frame-back-step
[ multiply speed 1/1.1
] multiply speed 1.1
BS set speed 1.0
l ab-loop
L cycle-values loop-file "inf" "no"

# seeking
LEFT seek -5
RIGHT seek 5
UP seek 60
DOWN seek -60
shift+LEFT seek -1 exact
shift+RIGHT seek 1 exact
PGUP add chapter 1
PGDWN add chapter -1

# playlist
> playlist-next
< playlist-prev
ENTER playlist-next
shift+ENTER playlist-prev

# audio & video
m cycle mute
9 add volume -2
0 add volume 2
/ add volume -2
* add volume 2
MOUSE_BTN3 add volume 2
MOUSE_BTN4 add volume -2
SHARP cycle audio
j cycle sub
J cycle sub down
v cycle sub-visibility
ctrl+s screenshot
S screenshot video
f cycle fullscreen
MOUSE_BTN0_DBL cycle fullscreen
ESC set fullscreen no
o show-progress

# application
ctrl+o script-message reel-action open
ctrl+l script-message reel-action open-location
F9 script-message reel-action toggle-playlist
ctrl+p script-message reel-action preferences
F1 script-message reel-action shortcuts
`
