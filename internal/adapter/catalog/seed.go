package catalog

import "github.com/niksmo/pricecompare/internal/core/domain"

func rating(v float64) *float64 {
	return &v
}

// MockProducts returns a fresh copy of the demo catalog.
func MockProducts() []domain.Product {
	return []domain.Product{
		{
			ID:            "1",
			Title:         "iPhone 15 Pro Max 256GB Natural Titanium",
			Price:         1199,
			OriginalPrice: 1299,
			Discount:      100,
			Currency:      "USD",
			Platform:      "Amazon",
			Image:         "https://images.unsplash.com/photo-1592899677977-9c10ca588bbd?w=300&h=300&fit=crop",
			URL:           "https://amazon.com/product/iphone-15-pro-max",
			Rating:        rating(4.8),
			Reviews:       1234,
			Availability:  "In Stock",
			Shipping:      "Free 2-day shipping",
			Features:      []string{"A17 Pro chip", "48MP camera", "120Hz display", "5G"},
		},
		{
			ID:            "2",
			Title:         "Samsung Galaxy S24 Ultra 256GB",
			Price:         1149,
			OriginalPrice: 1299,
			Discount:      150,
			Currency:      "USD",
			Platform:      "eBay",
			Image:         "https://images.unsplash.com/photo-1610945415295-d9bbf067e59c?w=300&h=300&fit=crop",
			URL:           "https://ebay.com/product/galaxy-s24-ultra",
			Rating:        rating(4.7),
			Reviews:       856,
			Availability:  "Available",
			Shipping:      "Free shipping",
			Features:      []string{"S Pen included", "200MP camera", "AI features", "5000mAh battery"},
		},
		{
			ID:            "3",
			Title:         "Google Pixel 8 Pro 128GB",
			Price:         999,
			OriginalPrice: 1099,
			Discount:      100,
			Currency:      "USD",
			Platform:      "Amazon",
			Image:         "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=300&h=300&fit=crop",
			URL:           "https://amazon.com/product/pixel-8-pro",
			Rating:        rating(4.6),
			Reviews:       432,
			Availability:  "In Stock",
			Shipping:      "Prime shipping",
			Features:      []string{"Tensor G3", "Magic Eraser", "Best AI camera", "Android 14"},
		},
		{
			ID:            "4",
			Title:         `MacBook Pro 14" M3 Pro`,
			Price:         1999,
			OriginalPrice: 2199,
			Discount:      200,
			Currency:      "USD",
			Platform:      "Amazon",
			Image:         "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=300&h=300&fit=crop",
			URL:           "https://amazon.com/product/macbook-pro-m3",
			Rating:        rating(4.9),
			Reviews:       2341,
			Availability:  "In Stock",
			Shipping:      "Free shipping",
			Features:      []string{"M3 Pro chip", "18GB RAM", "512GB SSD", "Liquid Retina XDR display"},
		},
		{
			ID:            "5",
			Title:         "Sony WH-1000XM5 Wireless Headphones",
			Price:         349,
			OriginalPrice: 399,
			Discount:      50,
			Currency:      "USD",
			Platform:      "eBay",
			Image:         "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300&h=300&fit=crop",
			URL:           "https://ebay.com/product/sony-wh1000xm5",
			Rating:        rating(4.7),
			Reviews:       1892,
			Availability:  "In Stock",
			Shipping:      "Free shipping",
			Features:      []string{"30hr battery", "Noise canceling", "Quick charge", "Multipoint connection"},
		},
		{
			ID:            "6",
			Title:         "Nintendo Switch OLED Model",
			Price:         319,
			OriginalPrice: 349,
			Discount:      30,
			Currency:      "USD",
			Platform:      "Amazon",
			Image:         "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=300&h=300&fit=crop",
			URL:           "https://amazon.com/product/nintendo-switch-oled",
			Rating:        rating(4.8),
			Reviews:       4567,
			Availability:  "In Stock",
			Shipping:      "Free shipping",
			Features:      []string{`7" OLED screen`, "Enhanced audio", "Wired LAN port", "64GB internal storage"},
		},
	}
}

func PopularSearches() []string {
	return []string{
		"iPhone 15 Pro Max",
		"Samsung Galaxy S24",
		"MacBook Pro",
		"Sony Headphones",
		"Gaming Laptop",
		"Nintendo Switch",
		"AirPods Pro",
		"iPad Pro",
	}
}

func Suggestions() []string {
	return []string{
		"iPhone 15 Pro Max",
		"Samsung Galaxy S24",
		"MacBook Pro M3",
		"Sony WH-1000XM5",
		"Nintendo Switch OLED",
		"iPad Pro 12.9",
		"AirPods Pro",
		"Gaming Laptop",
		"4K Monitor",
		"Wireless Mouse",
	}
}
