package scene

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to Create
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
}

type sceneEntry struct {
	description string
	create      func() (*Scene, error)
}

// registry lists the built-in scenes in display order
var registry = []struct {
	id    string
	entry sceneEntry
}{
	{"default", sceneEntry{"Diffuse, glass and metal spheres on a large ground sphere", NewDefaultScene}},
	{"single-sphere", sceneEntry{"One diffuse sphere under the sky", NewSingleSphereScene}},
	{"glass", sceneEntry{"Solid and hollow glass spheres on a checkered plane", NewGlassScene}},
	{"random-spheres", sceneEntry{"Hundreds of randomly placed small spheres around three large ones", NewRandomSpheresScene}},
	{"sphere-grid", sceneEntry{"Grid of metal spheres with colors varying in hue and chroma", NewSphereGridScene}},
	{"plane-stripes", sceneEntry{"Striped ground plane with a diffuse and a metal sphere", NewPlaneStripesScene}},
	{"shadows", sceneEntry{"Transformed ellipsoids in front of a checkered backdrop", NewShadowsScene}},
}

// Names returns the registered scene names in display order
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, r := range registry {
		names = append(names, r.id)
	}
	return names
}

// ListScenes returns metadata for every built-in scene
func ListScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(registry))
	for _, r := range registry {
		infos = append(infos, SceneInfo{
			ID:          r.id,
			DisplayName: titleCase(r.id),
			Description: r.entry.description,
		})
	}
	return infos
}

// Create builds the named scene
func Create(name string) (*Scene, error) {
	for _, r := range registry {
		if r.id == name {
			s, err := r.entry.create()
			if err != nil {
				return nil, fmt.Errorf("building scene %q: %w", name, err)
			}
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}

// titleCase converts a scene id like "random-spheres" into "Random Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
