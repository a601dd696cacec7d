package commands

import (
	"context"
	"encoding/json"
	"os"

	"github.com/patchdoc/patchdoc/docstore"
	"github.com/patchdoc/patchdoc/model"
	"github.com/patchdoc/patchdoc/store/memstore"
)

// snapshot is the on-disk shape of the whole store: every document's
// commit chain, root -> tip, since that's the order loadSnapshot needs to
// replay them back in.
type snapshot struct {
	Documents map[string][]*model.Commit `json:"documents"`
}

// loadSnapshot replays path's saved commits into backend. A missing file
// means an empty store, not an error.
func loadSnapshot(ctx context.Context, path string, backend *memstore.Store) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}

	store := docstore.New(backend)

	for _, chain := range snap.Documents {
		rootToTip := reverse(chain)
		if _, err := store.WriteMany(ctx, rootToTip); err != nil {
			return err
		}
	}

	return nil
}

// saveSnapshot writes every document backend currently holds to path,
// root -> tip per document so loadSnapshot can replay it directly.
func saveSnapshot(ctx context.Context, path string, store *docstore.Store, backend *memstore.Store) error {
	snap := snapshot{Documents: make(map[string][]*model.Commit)}

	for _, docID := range backend.Documents() {
		tipToRoot, err := store.List(ctx, docID)
		if err != nil {
			return err
		}

		snap.Documents[docID] = reverse(tipToRoot)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

func reverse(cs []*model.Commit) []*model.Commit {
	out := make([]*model.Commit, len(cs))
	for i, c := range cs {
		out[len(cs)-1-i] = c
	}

	return out
}
