// Package catalog implements product management plus the AI helpers that
// draft listing copy and product images.
package catalog

import (
	"context"
	"fmt"

	"github.com/shopmind/shopmind/internal/domain"
	"github.com/shopmind/shopmind/internal/store"
)

const descriptionPromptFmt = `
Write a concise and professional product description for an e-commerce listing.

Product Name: %s
Category: %s

Keep it simple, engaging, and highlight its primary features or benefits.
Avoid technical jargon and keep it customer-friendly.
Limit the description to 250 characters maximum.
`

const imagePromptFmt = `Generate a highly realistic, professional-grade e-commerce product image.

Product Details:
- Category: %s
- Name: '%s'
- Description: %s

Requirements:
- Use a clean, minimalistic, white or very light grey background.
- Ensure the product is well-lit with soft, natural-looking lighting.
- Add realistic shadows and soft reflections to ground the product naturally.
- No humans, brand logos, watermarks, or text overlays should be visible.
- Showcase the product from its most flattering angle that highlights key features.
- Ensure the product occupies a prominent position in the frame, centered or slightly off-centered.
- Maintain a high resolution and sharpness, ensuring all textures, colors, and details are clear.
- Follow the typical visual style of top e-commerce websites like Amazon, Flipkart, or Shopify.
- Make the product appear life-like and professionally photographed in a studio setup.
- The final image should look immediately ready for use on an e-commerce website without further editing.
`

// TextGenerator produces free text from a prompt.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator produces image bytes from a prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// Indexer is the slice of the semantic indexer the catalog needs.
type Indexer interface {
	SyncProduct(ctx context.Context, product *domain.Product)
	RemoveProduct(ctx context.Context, productID int64)
}

// Service manages catalog products and keeps their index snapshots fresh.
type Service struct {
	products store.ProductRepository
	indexer  Indexer
	chat     TextGenerator
	images   ImageGenerator
}

func NewService(products store.ProductRepository, indexer Indexer, chat TextGenerator, images ImageGenerator) *Service {
	return &Service{products: products, indexer: indexer, chat: chat, images: images}
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	return s.products.Search(ctx, keyword)
}

// ImageUpload carries an optional uploaded image for a product.
type ImageUpload struct {
	Name string
	Type string
	Data []byte
}

// AddOrUpdate persists the product and re-syncs its index snapshot so chat
// answers never serve stale catalog state.
func (s *Service) AddOrUpdate(ctx context.Context, product *domain.Product, image *ImageUpload) (*domain.Product, error) {
	if image != nil && len(image.Data) > 0 {
		product.ImageName = image.Name
		product.ImageType = image.Type
		product.ImageData = image.Data
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.indexer.SyncProduct(ctx, product)
	return product, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.indexer.RemoveProduct(ctx, id)
	return nil
}

// GenerateDescription drafts listing copy for a product name and category.
func (s *Service) GenerateDescription(ctx context.Context, name, category string) (string, error) {
	prompt := fmt.Sprintf(descriptionPromptFmt, name, category)
	return s.chat.Complete(ctx, prompt)
}

// GenerateImage renders a studio-style product image.
func (s *Service) GenerateImage(ctx context.Context, name, category, description string) ([]byte, error) {
	prompt := fmt.Sprintf(imagePromptFmt, category, name, description)
	return s.images.Generate(ctx, prompt)
}
