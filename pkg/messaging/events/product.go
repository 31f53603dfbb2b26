package events

import (
	"encoding/json"
	"time"

	"github.com/techshop/catalog_service/pkg/messaging"
)

type ProductCreatedEvent struct {
	ProductID int64     `json:"product_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

func (e ProductCreatedEvent) Subject() string {
	return messaging.ProductCreatedSubject
}

func (e ProductCreatedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type ProductStockAdjustedEvent struct {
	ProductID  int64     `json:"product_id"`
	Delta      int32     `json:"delta"`
	NewStock   int32     `json:"new_stock"`
	AdjustedAt time.Time `json:"adjusted_at"`
}

func (e ProductStockAdjustedEvent) Subject() string {
	return messaging.ProductStockAdjustedSubject
}

func (e ProductStockAdjustedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
