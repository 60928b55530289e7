package render

import (
	"fmt"
	"strings"

	"github.com/echoflaresat/prismcam/vectors"
)

// Key is a discrete camera command.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyA
	KeyD
	KeyW
	KeyS
	KeyZ
	KeyX
	KeyR
)

var keyNames = map[string]Key{
	"left":  KeyLeft,
	"right": KeyRight,
	"up":    KeyUp,
	"down":  KeyDown,
	"a":     KeyA,
	"d":     KeyD,
	"w":     KeyW,
	"s":     KeyS,
	"z":     KeyZ,
	"x":     KeyX,
	"r":     KeyR,
}

// ParseKeys reads a comma separated list of key names such as "left,up,r".
func ParseKeys(script string) ([]Key, error) {
	var keys []Key
	for _, name := range strings.Split(script, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		k, ok := keyNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown key %q", name)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Controls maps keys onto camera moves.
type Controls struct {
	RotationStep float64 // degrees
	MoveStep     float64 // world units
}

func DefaultControls() Controls {
	return Controls{RotationStep: 2.5, MoveStep: 5}
}

// Apply runs the command for k on cam. Elevation keys at the end of the
// range do nothing.
func (c Controls) Apply(cam *Camera, k Key) {
	switch k {
	case KeyLeft:
		cam.AddToAzimuth(c.RotationStep)
	case KeyRight:
		cam.AddToAzimuth(-c.RotationStep)
	case KeyUp:
		cam.ModifyElevation(c.RotationStep)
	case KeyDown:
		cam.ModifyElevation(-c.RotationStep)
	case KeyA:
		cam.ModifyOrigin(vectors.Vec3{X: -c.MoveStep})
	case KeyD:
		cam.ModifyOrigin(vectors.Vec3{X: c.MoveStep})
	case KeyW:
		cam.ModifyOrigin(vectors.Vec3{Y: c.MoveStep})
	case KeyS:
		cam.ModifyOrigin(vectors.Vec3{Y: -c.MoveStep})
	case KeyZ:
		cam.ModifyOrigin(vectors.Vec3{Z: c.MoveStep})
	case KeyX:
		cam.ModifyOrigin(vectors.Vec3{Z: -c.MoveStep})
	case KeyR:
		cam.Reset()
	}
}
