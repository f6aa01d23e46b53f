package catalog

import "minis-storefront/internal/models"

const DefaultPageSize = 40

// TotalPages is ceil(count/pageSize), never less than one.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginate returns the items on the 1-indexed page along with the total page
// count. Pages outside 1..totalPages yield an empty slice; clamping is left
// to the caller.
func Paginate(products []models.Product, pageSize, page int) ([]models.Product, int) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := TotalPages(len(products), pageSize)
	if page < 1 || page > total {
		return []models.Product{}, total
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(products))
	if start >= end {
		return []models.Product{}, total
	}
	return products[start:end:end], total
}
