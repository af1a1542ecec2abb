package crud

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string
	Name string
}

var errItemNotFound = errors.New("item not found")

type mapRepo struct {
	items   map[string]*item
	listing []*item
	deletes int
	err     error
}

func (m *mapRepo) FindAll(context.Context) ([]*item, error) {
	return m.listing, m.err
}

func (m *mapRepo) FindByID(_ context.Context, id string) (*item, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.items[id], nil
}

func (m *mapRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.items[id]
	return ok, nil
}

func (m *mapRepo) Save(_ context.Context, it item) (item, error) {
	m.items[it.ID] = &it
	return it, nil
}

func (m *mapRepo) SaveAll(ctx context.Context, items []item) ([]item, error) {
	for _, it := range items {
		_, _ = m.Save(ctx, it)
	}
	return items, nil
}

func (m *mapRepo) DeleteByID(_ context.Context, id string) error {
	m.deletes++
	delete(m.items, id)
	return nil
}

func newOps() (*Ops[item, string], *mapRepo) {
	repo := &mapRepo{items: map[string]*item{"a": {ID: "a", Name: "first"}}}
	return NewOps[item, string](repo, errItemNotFound), repo
}

func TestOps_FindByID(t *testing.T) {
	ops, _ := newOps()

	got, err := ops.FindByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Name)

	_, err = ops.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, errItemNotFound)
	assert.Contains(t, err.Error(), "missing")
}

func TestOps_FindByID_RepositoryError(t *testing.T) {
	ops, repo := newOps()
	repo.err = errors.New("boom")

	_, err := ops.FindByID(context.Background(), "a")
	assert.EqualError(t, err, "boom")
	assert.NotErrorIs(t, err, errItemNotFound)
}

func TestOps_FindAll_DropsNilEntries(t *testing.T) {
	ops, repo := newOps()
	repo.listing = []*item{nil, {ID: "a"}, nil, {ID: "b"}}

	got, err := ops.FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "a"}, {ID: "b"}}, got)
}

func TestOps_FindAll_EmptyIsNotNil(t *testing.T) {
	ops, _ := newOps()

	got, err := ops.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestOps_DeleteIfExists(t *testing.T) {
	ops, repo := newOps()
	ctx := context.Background()

	deleted, err := ops.DeleteIfExists(ctx, "a")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = ops.DeleteIfExists(ctx, "a")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 1, repo.deletes)
}
