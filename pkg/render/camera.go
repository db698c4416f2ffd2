package render

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/scene"
)

// ErrUnknownCamera is returned by ParseCameraKind.
var ErrUnknownCamera = errors.New("unknown camera")

// CameraKind selects how primary rays are generated.
type CameraKind uint8

const (
	// CameraPinhole shoots through the pixel corner with no jitter.
	CameraPinhole CameraKind = iota
	// CameraAA jitters within the pixel for antialiasing.
	CameraAA
	// CameraDOF adds a thin-lens aperture on top of CameraAA.
	CameraDOF
)

var cameraNames = map[CameraKind]string{
	CameraPinhole: "pinhole",
	CameraAA:      "aa",
	CameraDOF:     "dof",
}

func (k CameraKind) String() string {
	if s, ok := cameraNames[k]; ok {
		return s
	}
	return fmt.Sprintf("CameraKind(%d)", k)
}

// ParseCameraKind accepts pinhole, aa or dof.
func ParseCameraKind(s string) (CameraKind, error) {
	for k, name := range cameraNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want pinhole, aa or dof)", ErrUnknownCamera, s)
}

// Camera holds a position and an orthonormal basis. FOV is horizontal.
type Camera struct {
	Kind     CameraKind
	Position math3d.Vec3

	// Basis; Side points to screen left, Up to screen top.
	Forward math3d.Vec3
	Side    math3d.Vec3
	Up      math3d.Vec3

	TanHalfFOV    float64
	FocalDistance float64
	Aperture      float64
}

// NewCamera builds a camera from a scene view.
func NewCamera(kind CameraKind, view scene.View) Camera {
	forward := view.Forward()
	worldUp := view.Up
	if worldUp == (math3d.Vec3{}) {
		worldUp = math3d.UnitY()
	}
	side := worldUp.Cross(forward).Normalize()
	up := forward.Cross(side)

	focal := view.FocalDistance
	if focal <= 0 {
		focal = view.LookAt.Sub(view.Position).Len()
	}

	return Camera{
		Kind:          kind,
		Position:      view.Position,
		Forward:       forward,
		Side:          side,
		Up:            up,
		TanHalfFOV:    math.Tan(view.FOV / 2),
		FocalDistance: focal,
		Aperture:      view.Aperture,
	}
}

// direction returns the unit direction through image point (x, y) of a
// w by h image, (0, 0) being the top-left corner.
func (c Camera) direction(x, y float64, w, h int) math3d.Vec3 {
	fw, fh := float64(w), float64(h)
	lateral := c.Side.Scale(fw - 2*x).Add(c.Up.Scale(fh - 2*y))
	return c.Forward.Scale(fw).Add(lateral.Scale(c.TanHalfFOV)).Normalize()
}

// GenerateRay returns the primary ray for pixel (x, y).
func (c Camera) GenerateRay(x, y, w, h int, rng *math3d.Rand) math3d.Ray {
	px, py := float64(x), float64(y)
	if c.Kind == CameraPinhole {
		return math3d.NewRay(c.Position, c.direction(px, py, w, h))
	}

	d := c.direction(px+rng.Float64(), py+rng.Float64(), w, h)
	if c.Kind != CameraDOF || c.Aperture <= 0 {
		return math3d.NewRay(c.Position, d)
	}

	disk := math3d.RandomInUnitDisk(rng).Scale(c.Aperture)
	origin := c.Position.Add(c.Side.Scale(disk.X)).Add(c.Up.Scale(disk.Y))
	focus := c.Position.Add(d.Scale(c.FocalDistance / d.Dot(c.Forward)))
	return math3d.NewRay(origin, focus.Sub(origin).Normalize())
}

// Translate moves the camera in its own basis: X along Forward, Y along
// Side and Z along Up.
func (c *Camera) Translate(local math3d.Vec3) {
	c.Position = c.Position.
		Add(c.Forward.Scale(local.X)).
		Add(c.Side.Scale(local.Y)).
		Add(c.Up.Scale(local.Z))
}
