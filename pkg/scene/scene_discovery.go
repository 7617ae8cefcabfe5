package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

// builtInScenes maps scene IDs to their constructors
var builtInScenes = map[string]struct {
	description string
	create      func() *Scene
}{
	"default":       {"Diffuse sphere, two cubes and a floor slab under a faint singularity", NewDefaultScene},
	"lensing":       {"Grid of rainbow spheres lensed by a central point mass", NewLensingScene},
	"single-sphere": {"One diffuse sphere in front of the camera, no gravity", NewSingleSphereScene},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtInScenes))
	for id, entry := range builtInScenes {
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: entry.description,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// NewSceneByName creates a built-in scene by its ID
func NewSceneByName(name string) (*Scene, error) {
	entry, ok := builtInScenes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}
	return entry.create(), nil
}

// titleCase converts a filename-style string to title case
// e.g., "single-sphere" -> "Single Sphere"
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
