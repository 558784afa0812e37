package submission

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/adboard/internal/ads"
	"github.com/dmitrijs2005/adboard/internal/common"
	"github.com/dmitrijs2005/adboard/internal/images"
	"github.com/dmitrijs2005/adboard/internal/kvstore"
	"github.com/dmitrijs2005/adboard/internal/logging"
	"github.com/dmitrijs2005/adboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct{ user *models.User }

func (f *fakeSession) Current() *models.User { return f.user }

type recordingStrategy struct {
	calls int
	url   string
	err   error
}

func (r *recordingStrategy) Resolve(ctx context.Context, up *images.Upload) (string, error) {
	r.calls++
	return r.url, r.err
}

// countingStore records writes.
type countingStore struct {
	*kvstore.MemoryStore
	writes int
}

func (s *countingStore) Set(ctx context.Context, key string, value []byte) error {
	s.writes++
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *countingStore) Update(ctx context.Context, key string, fn kvstore.UpdateFunc) error {
	s.writes++
	return s.MemoryStore.Update(ctx, key, fn)
}

func setup(t *testing.T, user *models.User, strategy images.Strategy) (*Flow, *ads.Catalog, *countingStore) {
	t.Helper()
	store := &countingStore{MemoryStore: kvstore.NewMemoryStore()}
	session := &fakeSession{user: user}
	catalog, err := ads.NewCatalog(context.Background(), store, session, logging.Discard())
	require.NoError(t, err)
	return NewFlow(session, catalog, strategy, logging.Discard()), catalog, store
}

func ada() *models.User {
	u := models.NewUser("Ada", "Lovelace", "ada@x.com", "pw1")
	return &u
}

func validForm() Form {
	return Form{
		Category:    "Electronics",
		Title:       "Difference engine",
		Description: "slightly used",
		Price:       "1999.5",
		Image:       &images.Upload{Filename: "e.png", ContentType: "image/png", Data: []byte{1, 2, 3}},
	}
}

func TestSubmit_Success(t *testing.T) {
	strategy := &recordingStrategy{url: "https://cdn/e.png"}
	flow, catalog, _ := setup(t, ada(), strategy)

	ad, err := flow.Submit(context.Background(), validForm())
	require.NoError(t, err)

	assert.Equal(t, 1, strategy.calls)
	assert.Equal(t, "https://cdn/e.png", ad.ImageURL)
	assert.Equal(t, "1999.50", ad.Price)
	assert.Equal(t, "ada@x.com", ad.UserEmail)
	assert.Len(t, catalog.All(context.Background()), 1)
}

func TestSubmit_UnauthenticatedTouchesNothing(t *testing.T) {
	strategy := &recordingStrategy{url: "x"}
	flow, catalog, store := setup(t, nil, strategy)

	_, err := flow.Submit(context.Background(), validForm())
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	assert.Zero(t, strategy.calls)
	assert.Zero(t, store.writes)
	assert.Empty(t, catalog.All(context.Background()))
}

func TestSubmit_ValidationBeforeImage(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Form)
		field string
	}{
		{name: "category", edit: func(f *Form) { f.Category = "" }, field: "category"},
		{name: "title", edit: func(f *Form) { f.Title = " \t" }, field: "title"},
		{name: "description", edit: func(f *Form) { f.Description = "" }, field: "description"},
		{name: "price", edit: func(f *Form) { f.Price = "" }, field: "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := &recordingStrategy{url: "x"}
			flow, _, store := setup(t, ada(), strategy)

			form := validForm()
			tt.edit(&form)
			_, err := flow.Submit(context.Background(), form)

			var fe *common.FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
			assert.Zero(t, strategy.calls)
			assert.Zero(t, store.writes)
		})
	}
}

func TestSubmit_BadPriceBeforeImage(t *testing.T) {
	strategy := &recordingStrategy{url: "x"}
	flow, _, store := setup(t, ada(), strategy)

	form := validForm()
	form.Price = "twelve"
	_, err := flow.Submit(context.Background(), form)
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Zero(t, strategy.calls)
	assert.Zero(t, store.writes)
}

func TestSubmit_ImageErrors(t *testing.T) {
	t.Run("validation passes through", func(t *testing.T) {
		flow, _, store := setup(t, ada(), &recordingStrategy{err: images.ErrTooLarge})
		_, err := flow.Submit(context.Background(), validForm())
		require.ErrorIs(t, err, images.ErrTooLarge)
		assert.Zero(t, store.writes)
	})

	t.Run("infrastructure is wrapped", func(t *testing.T) {
		flow, _, store := setup(t, ada(), &recordingStrategy{err: errors.New("bucket gone")})
		_, err := flow.Submit(context.Background(), validForm())
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "resolve image:"))
		assert.Zero(t, store.writes)
	})
}

func TestSubmit_NoImageUsesPlaceholder(t *testing.T) {
	flow, _, _ := setup(t, ada(), images.NewEmbedded(common.DefaultPlaceholderImageURL, 1<<20))

	form := validForm()
	form.Image = nil
	ad, err := flow.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, common.DefaultPlaceholderImageURL, ad.ImageURL)
}

func TestSubmit_EmbeddedImage(t *testing.T) {
	flow, _, _ := setup(t, ada(), images.NewEmbedded("ph", 1<<20))

	ad, err := flow.Submit(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AQID", ad.ImageURL)
}

func TestSubmit_DoubleSubmitCreatesTwoAds(t *testing.T) {
	flow, catalog, _ := setup(t, ada(), images.NewPlaceholder("ph"))

	a1, err := flow.Submit(context.Background(), validForm())
	require.NoError(t, err)
	a2, err := flow.Submit(context.Background(), validForm())
	require.NoError(t, err)

	assert.NotEqual(t, a1.ID, a2.ID)
	all := catalog.All(context.Background())
	require.Len(t, all, 2)
	assert.Equal(t, a2.ID, all[0].ID)
}

var _ Adder = (*ads.Catalog)(nil)
