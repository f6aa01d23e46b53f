package catalog_test

import (
	"fmt"

	"minis-storefront/internal/models"
)

func product(sku, name, material, price string, tags ...string) models.Product {
	return models.Product{SKU: sku, Name: name, Material: material, Price: price, Tags: tags}
}

func skus(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.SKU
	}
	return out
}

func numbered(n int) []models.Product {
	out := make([]models.Product, n)
	for i := range out {
		out[i] = product(fmt.Sprintf("SKU-%03d", i), fmt.Sprintf("Figure %03d", i), "metal", "5.00")
	}
	return out
}
