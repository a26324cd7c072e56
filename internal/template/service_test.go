// AngelaMos | 2026
// service_test.go

package template

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/invoicery/internal/core"
)

type fakeRepo struct {
	mu        sync.Mutex
	templates map[string]*Template
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{templates: make(map[string]*Template)}
}

func (r *fakeRepo) Create(_ context.Context, tmpl *Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *tmpl
	r.templates[tmpl.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.templates[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepo) GetDefault(_ context.Context) (*Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.templates {
		if t.IsDefault {
			copied := *t
			return &copied, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepo) List(_ context.Context) ([]Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, tmpl *Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.templates[tmpl.ID]
	if !ok {
		return core.ErrNotFound
	}
	isDefault := stored.IsDefault
	copied := *tmpl
	copied.IsDefault = isDefault
	r.templates[tmpl.ID] = &copied
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.templates, id)
	return nil
}

func (r *fakeRepo) SetDefault(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[id]; !ok {
		return core.ErrNotFound
	}
	for _, t := range r.templates {
		t.IsDefault = false
	}
	r.templates[id].IsDefault = true
	return nil
}

func countDefaults(t *testing.T, repo *fakeRepo) int {
	t.Helper()
	repo.mu.Lock()
	defer repo.mu.Unlock()
	n := 0
	for _, tmpl := range repo.templates {
		if tmpl.IsDefault {
			n++
		}
	}
	return n
}

func TestCreateAppliesDefaultsForOmittedFields(t *testing.T) {
	service := NewService(newFakeRepo())

	tmpl, err := service.Create(context.Background(), CreateTemplateRequest{
		Name:   "Plain",
		Layout: "modern",
	})
	require.NoError(t, err)

	assert.Equal(t, "modern", tmpl.Layout)
	assert.Equal(t, DefaultStyle().PrimaryColor, tmpl.PrimaryColor)
	assert.Equal(t, DefaultStyle().FontFamily, tmpl.FontFamily)
	assert.False(t, tmpl.IsDefault)
}

func TestSettingSecondDefaultLeavesExactlyOne(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)
	ctx := context.Background()

	first, err := service.Create(ctx, CreateTemplateRequest{
		Name:      "First",
		IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := service.Create(ctx, CreateTemplateRequest{
		Name:      "Second",
		IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	assert.Equal(t, 1, countDefaults(t, repo))

	stored, err := service.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsDefault)
}

func TestUpdatePromotesToDefault(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)
	ctx := context.Background()

	a, err := service.Create(ctx, CreateTemplateRequest{
		Name:      "A",
		IsDefault: true,
	})
	require.NoError(t, err)

	b, err := service.Create(ctx, CreateTemplateRequest{Name: "B"})
	require.NoError(t, err)

	makeDefault := true
	updated, err := service.Update(ctx, b.ID, UpdateTemplateRequest{
		IsDefault: &makeDefault,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)

	assert.Equal(t, 1, countDefaults(t, repo))

	storedA, err := service.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, storedA.IsDefault)
}

func TestResolveStylePrecedence(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)
	ctx := context.Background()

	def, err := service.Create(ctx, CreateTemplateRequest{
		Name:         "Default",
		PrimaryColor: "#111111",
		IsDefault:    true,
	})
	require.NoError(t, err)

	named, err := service.Create(ctx, CreateTemplateRequest{
		Name:         "Named",
		PrimaryColor: "#222222",
	})
	require.NoError(t, err)

	override := &Style{PrimaryColor: "#333333"}
	assert.Equal(
		t,
		"#333333",
		service.ResolveStyle(ctx, &named.ID, override).PrimaryColor,
	)

	assert.Equal(
		t,
		"#222222",
		service.ResolveStyle(ctx, &named.ID, nil).PrimaryColor,
	)

	assert.Equal(
		t,
		"#111111",
		service.ResolveStyle(ctx, nil, nil).PrimaryColor,
	)

	require.NoError(t, service.Delete(ctx, def.ID))
	require.NoError(t, service.Delete(ctx, named.ID))

	assert.Equal(
		t,
		DefaultStyle().PrimaryColor,
		service.ResolveStyle(ctx, nil, nil).PrimaryColor,
	)
}
