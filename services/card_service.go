package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Dosada05/card-tournaments/models"
	"github.com/Dosada05/card-tournaments/repositories"
	"github.com/Dosada05/card-tournaments/storage"
	"github.com/google/uuid"
)

type CreateCardInput struct {
	Category   string  `json:"category"`
	Title      string  `json:"title"`
	Src        string  `json:"src"`
	Content    string  `json:"content"`
	ButtonText *string `json:"button_text"`
	ButtonLink *string `json:"button_link"`
	CreatedBy  *string `json:"created_by"`
}

type UpdateCardInput struct {
	Category   *string `json:"category"`
	Title      *string `json:"title"`
	Src        *string `json:"src"`
	Content    *string `json:"content"`
	ButtonText *string `json:"button_text"`
	ButtonLink *string `json:"button_link"`
}

type CardService interface {
	CreateCard(ctx context.Context, input CreateCardInput) (*models.Card, error)
	GetCardByID(ctx context.Context, id int64) (*models.Card, error)
	ListCards(ctx context.Context) ([]models.Card, error)
	UpdateCard(ctx context.Context, id int64, input UpdateCardInput) (*models.Card, error)
	DeleteCard(ctx context.Context, id int64) error
	// UploadBanner stores the banner image and points the card's src at its
	// public URL.
	UploadBanner(ctx context.Context, id int64, contentType string, file io.Reader) (*models.Card, error)
}

type cardService struct {
	cardRepo repositories.CardRepository
	uploader storage.FileUploader
}

func NewCardService(cardRepo repositories.CardRepository, uploader storage.FileUploader) CardService {
	return &cardService{
		cardRepo: cardRepo,
		uploader: uploader,
	}
}

func (s *cardService) CreateCard(ctx context.Context, input CreateCardInput) (*models.Card, error) {
	if input.Title == "" {
		return nil, ErrCardTitleRequired
	}

	card := &models.Card{
		Category:   input.Category,
		Title:      input.Title,
		Src:        input.Src,
		Content:    input.Content,
		ButtonText: input.ButtonText,
		ButtonLink: input.ButtonLink,
		CreatedBy:  input.CreatedBy,
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return card, nil
}

func (s *cardService) GetCardByID(ctx context.Context, id int64) (*models.Card, error) {
	card, err := s.cardRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to load card %d: %w", id, err)
	}
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context) ([]models.Card, error) {
	cards, err := s.cardRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

func (s *cardService) UpdateCard(ctx context.Context, id int64, input UpdateCardInput) (*models.Card, error) {
	card, err := s.GetCardByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Category != nil {
		card.Category = *input.Category
	}
	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrCardTitleRequired
		}
		card.Title = *input.Title
	}
	if input.Src != nil {
		card.Src = *input.Src
	}
	if input.Content != nil {
		card.Content = *input.Content
	}
	if input.ButtonText != nil {
		card.ButtonText = input.ButtonText
	}
	if input.ButtonLink != nil {
		card.ButtonLink = input.ButtonLink
	}

	if err := s.cardRepo.Update(ctx, card); err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to update card %d: %w", id, err)
	}
	return card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, id int64) error {
	if err := s.cardRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return ErrCardNotFound
		}
		return fmt.Errorf("failed to delete card %d: %w", id, err)
	}
	return nil
}

func (s *cardService) UploadBanner(ctx context.Context, id int64, contentType string, file io.Reader) (*models.Card, error) {
	card, err := s.GetCardByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("cards/%d/banner_%s", id, uuid.NewString())
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload banner for card %d: %w", id, err)
	}

	if err := s.cardRepo.UpdateSrc(ctx, id, result.Location); err != nil {
		return nil, fmt.Errorf("failed to save banner url for card %d: %w", id, err)
	}
	card.Src = result.Location
	return card, nil
}
