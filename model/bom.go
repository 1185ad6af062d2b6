package model

// BillOfMaterialsEntry is one component requirement inside a product's kit.
// Optional entries never gate unit completion and are excluded from pool
// accounting during reconstruction.
type BillOfMaterialsEntry struct {
	ID              int64  `json:"-"`
	EntryID         string `json:"entry_id"`
	ProductID       string `json:"product_id"`
	ComponentID     string `json:"component_id"`
	ComponentName   string `json:"component_name,omitempty"`
	QuantityPerUnit int64  `json:"quantity_per_unit"`
	Optional        bool   `json:"optional"`
}
