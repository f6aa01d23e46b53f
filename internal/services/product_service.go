package services

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/shopspring/decimal"
	"minis-storefront/internal/models"
)

const (
	MaxImageSize = 5 << 20
	imageFolder  = "premade"
)

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]models.PremadeProduct, error)
	CreateProduct(ctx context.Context, p models.PremadeProduct) (*models.PremadeProduct, bool, error)
	UpdateProduct(ctx context.Context, id int64, patch models.PremadeProductPatch) (*models.PremadeProduct, error)
	DeleteProduct(ctx context.Context, id int64) (*models.PremadeProduct, error)
	CountProducts(ctx context.Context) (int, error)
}

// BlobStore holds uploaded product images.
type BlobStore interface {
	Upload(folder, ext, contentType string, data []byte) (string, string, error)
	Delete(storagePath string) error
	PathFromURL(publicURL string) (string, bool)
}

type ProductService struct {
	repo  ProductRepository
	blobs BlobStore
}

// NewProductService wires the premade catalogue. blobs may be nil when no
// storage is configured; image uploads then fail with ErrStorageDisabled.
func NewProductService(repo ProductRepository, blobs BlobStore) *ProductService {
	return &ProductService{repo: repo, blobs: blobs}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.PremadeProduct, error) {
	return s.repo.ListProducts(ctx)
}

// CreateProduct stores a new premade product. A SKU that already exists is
// not an error: the stored product is returned and created is false.
func (s *ProductService) CreateProduct(ctx context.Context, req models.CreatePremadeProductRequest) (*models.PremadeProduct, bool, error) {
	if strings.TrimSpace(req.Name) == "" || req.Price == nil || req.OriginalPrice == nil ||
		strings.TrimSpace(req.Image) == "" || strings.TrimSpace(req.Description) == "" ||
		strings.TrimSpace(req.SKU) == "" {
		return nil, false, fmt.Errorf("%w: All fields are required", ErrValidation)
	}
	if err := checkPrice("price", *req.Price); err != nil {
		return nil, false, err
	}
	if err := checkPrice("originalPrice", *req.OriginalPrice); err != nil {
		return nil, false, err
	}

	return s.repo.CreateProduct(ctx, models.PremadeProduct{
		Name:          strings.TrimSpace(req.Name),
		Price:         req.Price.Round(2),
		OriginalPrice: req.OriginalPrice.Round(2),
		Image:         req.Image,
		Description:   req.Description,
		SKU:           strings.TrimSpace(req.SKU),
	})
}

func (s *ProductService) UpdateProduct(ctx context.Context, req models.UpdatePremadeProductRequest) (*models.PremadeProduct, error) {
	if req.ID <= 0 {
		return nil, fmt.Errorf("%w: Product ID is required", ErrValidation)
	}

	patch := req.PremadeProductPatch
	for field, v := range map[string]*string{"name": patch.Name, "image": patch.Image, "description": patch.Description, "sku": patch.SKU} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return nil, fmt.Errorf("%w: %s cannot be empty", ErrValidation, field)
		}
	}
	if patch.Price != nil {
		if err := checkPrice("price", *patch.Price); err != nil {
			return nil, err
		}
		rounded := patch.Price.Round(2)
		patch.Price = &rounded
	}
	if patch.OriginalPrice != nil {
		if err := checkPrice("originalPrice", *patch.OriginalPrice); err != nil {
			return nil, err
		}
		rounded := patch.OriginalPrice.Round(2)
		patch.OriginalPrice = &rounded
	}

	p, err := s.repo.UpdateProduct(ctx, req.ID, patch)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return p, nil
}

// DeleteProduct removes the product and, when its image lives in our
// bucket, the image too. A failed image delete is logged only.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: Product ID is required", ErrValidation)
	}

	deleted, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return mapRepoError(err)
	}

	if s.blobs != nil {
		if storagePath, ok := s.blobs.PathFromURL(deleted.Image); ok {
			if err := s.blobs.Delete(storagePath); err != nil {
				slog.Warn("failed to delete product image", "product_id", id, "path", storagePath, "error", err)
			}
		}
	}
	return nil
}

// SeedProducts inserts the starter products when the table is empty. It
// returns how many were inserted and how many already existed.
func (s *ProductService) SeedProducts(ctx context.Context) (inserted, existing int, err error) {
	existing, err = s.repo.CountProducts(ctx)
	if err != nil {
		return 0, 0, err
	}
	if existing > 0 {
		return 0, existing, nil
	}

	for _, p := range SeedProducts() {
		if _, created, err := s.repo.CreateProduct(ctx, p); err != nil {
			return inserted, 0, fmt.Errorf("failed to seed %s: %w", p.SKU, err)
		} else if created {
			inserted++
		}
	}
	return inserted, 0, nil
}

// UploadImage stores an image for a premade product and returns its public
// URL.
func (s *ProductService) UploadImage(ctx context.Context, filename, contentType string, data []byte) (*models.UploadResponse, error) {
	if s.blobs == nil {
		return nil, ErrStorageDisabled
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrValidation)
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrValidation, MaxImageSize)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: only image uploads are accepted", ErrValidation)
	}

	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = strings.TrimPrefix(contentType, "image/")
	}

	storagePath, url, err := s.blobs.Upload(imageFolder, strings.ToLower(ext), contentType, data)
	if err != nil {
		return nil, err
	}
	return &models.UploadResponse{URL: url, Path: storagePath}, nil
}

func checkPrice(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", ErrValidation, field)
	}
	return nil
}

// SeedProducts is the starter premade catalogue.
func SeedProducts() []models.PremadeProduct {
	return []models.PremadeProduct{
		{
			Name:          "Human Fighter",
			Price:         decimal.NewFromInt(20),
			OriginalPrice: decimal.NewFromInt(30),
			Image:         "/fighterfront.jpeg",
			Description:   "Pre-painted metal miniature. Perfect for tabletop gaming.",
			SKU:           "1234567",
		},
		{
			Name:          "Dwarf Warrior",
			Price:         decimal.RequireFromString("79.99"),
			OriginalPrice: decimal.NewFromInt(120),
			Image:         "https://via.placeholder.com/300x300",
			Description:   "Best seller with excellent reviews. Highly detailed dwarf warrior ready for battle.",
			SKU:           "PREMADE-002",
		},
		{
			Name:          "Elven Archer",
			Price:         decimal.NewFromInt(130),
			OriginalPrice: decimal.NewFromInt(200),
			Image:         "https://via.placeholder.com/300x300",
			Description:   "Limited edition exclusive item. Masterfully painted elven archer.",
			SKU:           "PREMADE-003",
		},
	}
}
