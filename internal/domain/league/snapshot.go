package league

import (
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/slowpitch-league/internal/domain/outbox"
)

const (
	// StorageKey names the persisted snapshot.
	StorageKey = "slowpitch-fantasy-mvp-state"
	// SchemaVersion is the snapshot layout written by Encode.
	SchemaVersion = 5
)

var ErrUnsupportedSchema = errors.New("unsupported snapshot schema")

// Snapshot is the persisted client state together with undelivered remote writes.
type Snapshot struct {
	Version int              `json:"version"`
	SavedAt time.Time        `json:"savedAt"`
	State   State            `json:"state"`
	Pending []outbox.Command `json:"pending"`
}

type document = map[string]any

// upgrade moves a document from version n to n+1.
type upgrade func(document) (document, error)

// upgrades is indexed by source version.
var upgrades = map[int]upgrade{
	1: upgradeV1,
	2: upgradeV2,
	3: upgradeV3,
	4: upgradeV4,
}

func Encode(snap Snapshot) ([]byte, error) {
	snap.Version = SchemaVersion
	if snap.Pending == nil {
		snap.Pending = []outbox.Command{}
	}
	raw, err := sonic.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return raw, nil
}

// Decode reads a snapshot of any known version and upgrades it to the current layout.
func Decode(raw []byte) (Snapshot, error) {
	var doc document
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	version := schemaVersion(doc)
	if version > SchemaVersion || version < 1 {
		return Snapshot{}, fmt.Errorf("%w: version %d", ErrUnsupportedSchema, version)
	}

	doc, err := Upgrade(doc, version)
	if err != nil {
		return Snapshot{}, err
	}

	normalized, err := sonic.Marshal(doc)
	if err != nil {
		return Snapshot{}, fmt.Errorf("re-encode upgraded snapshot: %w", err)
	}
	var snap Snapshot
	if err := sonic.Unmarshal(normalized, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode upgraded snapshot: %w", err)
	}

	for i := range snap.State.Teams {
		snap.State.Teams[i].Normalize()
	}
	if snap.State.Week < 1 {
		snap.State.Week = 1
	}
	return snap, nil
}

// Upgrade runs the upgrade chain from version up to SchemaVersion.
func Upgrade(doc document, version int) (document, error) {
	for v := version; v < SchemaVersion; v++ {
		step, ok := upgrades[v]
		if !ok {
			return nil, fmt.Errorf("%w: no upgrade from version %d", ErrUnsupportedSchema, v)
		}
		next, err := step(doc)
		if err != nil {
			return nil, fmt.Errorf("upgrade snapshot v%d: %w", v, err)
		}
		doc = next
	}
	return doc, nil
}

func schemaVersion(doc document) int {
	v, ok := doc["version"].(float64)
	if !ok {
		return 1
	}
	return int(v)
}

// upgradeV1 renames starters to active and the underscore stat columns.
func upgradeV1(doc document) (document, error) {
	for _, t := range teamDocs(doc) {
		if _, ok := t["active"]; !ok {
			t["active"] = listOr(t["starters"])
		}
		delete(t, "starters")
		t["bench"] = listOr(t["bench"])
	}

	rename := map[string]string{"_1B": "singles", "_2B": "doubles", "_3B": "triples"}
	renameRows := func(rows any) {
		list, _ := rows.([]any)
		for _, item := range list {
			row, ok := item.(document)
			if !ok {
				continue
			}
			for from, to := range rename {
				if v, ok := row[from]; ok {
					row[to] = v
					delete(row, from)
				}
			}
		}
	}
	renameRows(doc["pool"])
	if uploads, ok := doc["uploads"].(document); ok {
		renameRows(uploads["MON"])
		renameRows(uploads["FRI"])
	}

	doc["version"] = 2
	return doc, nil
}

// upgradeV2 adds per-night actives and locks.
func upgradeV2(doc document) (document, error) {
	for _, t := range teamDocs(doc) {
		if _, ok := t["activeByNight"].(document); !ok {
			active := listOr(t["active"])
			t["activeByNight"] = document{"MON": copyList(active), "FRI": copyList(active)}
		}
		if _, ok := t["lockedByNight"].(document); !ok {
			t["lockedByNight"] = document{"MON": []any{}, "FRI": []any{}}
		}
		t["locked"] = listOr(t["locked"])
	}
	doc["version"] = 3
	return doc, nil
}

// upgradeV3 adds processed flags, the add/drop counter and per-team captains.
// Captains used to live in a map keyed by owner name.
func upgradeV3(doc document) (document, error) {
	captains, _ := doc["captains"].(document)
	for _, t := range teamDocs(doc) {
		if _, ok := t["processed"].(document); !ok {
			t["processed"] = document{"MON": false, "FRI": false}
		}
		if _, ok := t["seasonAddDropsUsed"]; !ok {
			t["seasonAddDropsUsed"] = 0
		}
		if key, _ := t["captainKey"].(string); key == "" {
			owner, _ := t["owner"].(string)
			if captain, ok := captains[owner].(string); ok {
				t["captainKey"] = captain
			}
		}
	}
	delete(doc, "captains")
	delete(doc, "owners")
	doc["version"] = 4
	return doc, nil
}

// upgradeV4 wraps the flat state into the snapshot envelope.
func upgradeV4(doc document) (document, error) {
	delete(doc, "version")
	return document{
		"version": SchemaVersion,
		"savedAt": time.Time{}.Format(time.RFC3339),
		"state":   doc,
		"pending": []any{},
	}, nil
}

func teamDocs(doc document) []document {
	list, _ := doc["teams"].([]any)
	out := make([]document, 0, len(list))
	for _, item := range list {
		if t, ok := item.(document); ok {
			out = append(out, t)
		}
	}
	return out
}

func listOr(v any) []any {
	if list, ok := v.([]any); ok {
		return list
	}
	return []any{}
}

func copyList(list []any) []any {
	return append([]any{}, list...)
}
