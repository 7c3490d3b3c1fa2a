package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Dosada05/card-tournaments/models"
	"github.com/Dosada05/card-tournaments/repositories"
	"github.com/Dosada05/card-tournaments/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCardRepo struct {
	cards  map[int64]*models.Card
	nextID int64
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{cards: make(map[int64]*models.Card), nextID: 1}
}

func (r *fakeCardRepo) Create(ctx context.Context, card *models.Card) error {
	card.ID = r.nextID
	r.nextID++
	r.cards[card.ID] = card
	return nil
}

func (r *fakeCardRepo) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	card, ok := r.cards[id]
	if !ok {
		return nil, repositories.ErrCardNotFound
	}
	return card, nil
}

func (r *fakeCardRepo) List(ctx context.Context) ([]models.Card, error) {
	var out []models.Card
	for _, card := range r.cards {
		out = append(out, *card)
	}
	return out, nil
}

func (r *fakeCardRepo) Update(ctx context.Context, card *models.Card) error {
	if _, ok := r.cards[card.ID]; !ok {
		return repositories.ErrCardNotFound
	}
	r.cards[card.ID] = card
	return nil
}

func (r *fakeCardRepo) UpdateSrc(ctx context.Context, id int64, src string) error {
	card, ok := r.cards[id]
	if !ok {
		return repositories.ErrCardNotFound
	}
	card.Src = src
	return nil
}

func (r *fakeCardRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.cards[id]; !ok {
		return repositories.ErrCardNotFound
	}
	delete(r.cards, id)
	return nil
}

type fakeUploader struct {
	lastKey         string
	lastContentType string
}

func (u *fakeUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	u.lastKey = key
	u.lastContentType = contentType
	return &storage.UploadResult{Key: key, Location: "https://cdn.example.com/" + key}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error { return nil }

func (u *fakeUploader) PublicURL(key string) string { return "https://cdn.example.com/" + key }

func TestCreateCardRequiresTitle(t *testing.T) {
	svc := NewCardService(newFakeCardRepo(), &fakeUploader{})

	_, err := svc.CreateCard(context.Background(), CreateCardInput{Category: "promo"})
	require.ErrorIs(t, err, ErrCardTitleRequired)
}

func TestUploadBannerUpdatesSrc(t *testing.T) {
	cardRepo := newFakeCardRepo()
	uploader := &fakeUploader{}
	svc := NewCardService(cardRepo, uploader)

	created, err := svc.CreateCard(context.Background(), CreateCardInput{Title: "Grand Finals"})
	require.NoError(t, err)

	card, err := svc.UploadBanner(context.Background(), created.ID, "image/png", strings.NewReader("fake-image"))
	require.NoError(t, err)

	assert.Equal(t, "image/png", uploader.lastContentType)
	assert.Contains(t, uploader.lastKey, "cards/")
	assert.Equal(t, "https://cdn.example.com/"+uploader.lastKey, card.Src)

	stored, _ := cardRepo.GetByID(context.Background(), created.ID)
	assert.Equal(t, card.Src, stored.Src)
}

func TestUploadBannerUnknownCard(t *testing.T) {
	svc := NewCardService(newFakeCardRepo(), &fakeUploader{})

	_, err := svc.UploadBanner(context.Background(), 42, "image/png", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrCardNotFound)
}

func TestUpdateCardPatchesFields(t *testing.T) {
	cardRepo := newFakeCardRepo()
	svc := NewCardService(cardRepo, &fakeUploader{})

	created, err := svc.CreateCard(context.Background(), CreateCardInput{Title: "Old", Category: "promo"})
	require.NoError(t, err)

	newTitle := "New"
	updated, err := svc.UpdateCard(context.Background(), created.ID, UpdateCardInput{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "promo", updated.Category, "unset fields stay untouched")
}
