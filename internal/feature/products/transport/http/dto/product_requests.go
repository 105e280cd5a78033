// Package dto はproductsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// ProductReq is the request body shared by the create and update endpoints.
// All three fields are required.
type ProductReq struct {
	Name   string `json:"name" binding:"required"`
	Price  *int   `json:"price" binding:"required"`
	UnitID uint   `json:"unit_id" binding:"required"`
}

// ListQuery carries the optional filter and pagination parameters of the
// product index endpoint.
type ListQuery struct {
	Name    string `form:"name"`
	Price   *int   `form:"price"`
	UnitID  *uint  `form:"unit_id"`
	Skip    int    `form:"skip"`
	Limit   int    `form:"limit"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// Filters converts the bound query values into a repository filter map.
// Only provided values are included.
func (q ListQuery) Filters() map[string]any {
	filters := map[string]any{}
	if q.Name != "" {
		filters["name"] = q.Name
	}
	if q.Price != nil {
		filters["price"] = *q.Price
	}
	if q.UnitID != nil {
		filters["unit_id"] = *q.UnitID
	}
	return filters
}
