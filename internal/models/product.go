package models

// Product is a catalog record as served by the remote product source.
// Products are read-only on our side; the catalog owns every field.
type Product struct {
	ID            string  `json:"_id" bson:"product_id" validate:"required"`
	Name          string  `json:"name" bson:"name" validate:"required"`
	Description   string  `json:"description" bson:"description"`
	Price         float64 `json:"price" bson:"price" validate:"gte=0"`
	Category      string  `json:"category" bson:"category"`
	Image         string  `json:"image" bson:"image"`
	OriginalPrice float64 `json:"originalPrice,omitempty" bson:"original_price,omitempty"`
	Rating        float64 `json:"rating,omitempty" bson:"rating,omitempty"`
	RatingCount   int     `json:"ratingCount,omitempty" bson:"rating_count,omitempty"`
}
