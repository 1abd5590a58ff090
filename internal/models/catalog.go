package models

import "time"

type Category struct {
	ID            int64     `json:"id"`
	NameUz        string    `json:"name_uz"`
	NameRu        string    `json:"name_ru"`
	DescriptionUz string    `json:"description_uz"`
	DescriptionRu string    `json:"description_ru"`
	PhotoURL      string    `json:"photo_url,omitempty"`
	IsActive      bool      `json:"is_active"`
	SortOrder     int64     `json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Name возвращает название категории на выбранном языке.
func (c *Category) Name(lang string) string {
	if lang == LangRu {
		return c.NameRu
	}
	return c.NameUz
}

// Description возвращает описание категории на выбранном языке.
func (c *Category) Description(lang string) string {
	if lang == LangRu {
		return c.DescriptionRu
	}
	return c.DescriptionUz
}

type Product struct {
	ID            int64     `json:"id"`
	CategoryID    int64     `json:"category_id"`
	NameUz        string    `json:"name_uz"`
	NameRu        string    `json:"name_ru"`
	DescriptionUz string    `json:"description_uz"`
	DescriptionRu string    `json:"description_ru"`
	Price         int64     `json:"price"`
	PhotoURL      string    `json:"photo_url,omitempty"`
	IsAvailable   bool      `json:"is_available"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Name возвращает название товара на выбранном языке.
func (p *Product) Name(lang string) string {
	if lang == LangRu {
		return p.NameRu
	}
	return p.NameUz
}

// Description возвращает описание товара на выбранном языке.
func (p *Product) Description(lang string) string {
	if lang == LangRu {
		return p.DescriptionRu
	}
	return p.DescriptionUz
}
