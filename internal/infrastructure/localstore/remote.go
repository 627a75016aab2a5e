package localstore

import "context"

// StateAPI is the per-user snapshot endpoint of the league server.
type StateAPI interface {
	GetState(ctx context.Context) ([]byte, error)
	PutState(ctx context.Context, raw []byte) error
}

// RemoteStore keeps the snapshot on the server under the logged-in user.
type RemoteStore struct {
	api StateAPI
}

func NewRemoteStore(api StateAPI) *RemoteStore {
	return &RemoteStore{api: api}
}

func (s *RemoteStore) Load(ctx context.Context) ([]byte, error) {
	return s.api.GetState(ctx)
}

func (s *RemoteStore) Save(ctx context.Context, raw []byte) error {
	return s.api.PutState(ctx, raw)
}
