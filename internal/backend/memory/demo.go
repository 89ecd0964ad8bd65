package memory

import (
	"time"

	"github.com/rungrid/rungrid/internal/backend"
)

// Demo returns a backend seeded with a small catalogue and scan findings, so
// the shell has something to show without a platform backend. opts apply
// after the seed data.
func Demo(bus *backend.Bus, opts ...Option) *Backend {
	seed := []Option{
		WithGroups(
			backend.Group{ID: "dev", Name: "dev", Order: 1},
			backend.Group{ID: "tools", Name: "tools", Order: 2},
		),
		WithItems(
			backend.Item{ID: "docker", Name: "Docker Desktop", Path: "/Applications/Docker.app", Type: backend.ItemTypeApp, GroupID: "dev"},
			backend.Item{ID: "postman", Name: "Postman", Path: "/Applications/Postman.app", Type: backend.ItemTypeApp, GroupID: "dev"},
			backend.Item{ID: "vscode", Name: "Visual Studio Code", Path: "/Applications/Visual Studio Code.app", Type: backend.ItemTypeApp, GroupID: "dev"},
			backend.Item{ID: "terminal", Name: "Terminal", Path: "/System/Applications/Utilities/Terminal.app", Type: backend.ItemTypeSystem, GroupID: "tools"},
			backend.Item{ID: "downloads", Name: "Downloads", Path: "~/Downloads", Type: backend.ItemTypeFolder, GroupID: "tools"},
			backend.Item{ID: "handbook", Name: "Team handbook", Path: "https://example.com/handbook", Type: backend.ItemTypeURL},
		),
		WithRoots("/Applications", "~/Desktop"),
		WithFindings("/Applications",
			backend.ItemInput{Name: "Firefox", Path: "/Applications/Firefox.app", Type: backend.ItemTypeApp},
			backend.ItemInput{Name: "Docker Desktop", Path: "/Applications/Docker.app", Type: backend.ItemTypeApp},
		),
		WithFindings("~/Desktop",
			backend.ItemInput{Name: "Notes", Path: "~/Desktop/notes.md", Type: backend.ItemTypeDoc},
		),
		WithScanDelay(400 * time.Millisecond),
	}
	b := New(bus, append(seed, opts...)...)
	b.SetPick("PickScanRoot", "~/Projects")
	return b
}
