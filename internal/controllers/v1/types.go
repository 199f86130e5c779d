// Package v1 implements the first version of the HTTP API.
package v1

import (
	cv_uuid "github.com/centavo-app/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type URIID struct {
	ID cv_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total"`  // The total number of resources matching the query
}

// owner returns the owner scope of the request. Requests without an
// X-User-ID header operate on the default owner.
func owner(c *gin.Context) (uuid.UUID, error) {
	header := c.GetHeader("X-User-ID")
	if header == "" {
		return uuid.Nil, nil
	}

	id, err := uuid.Parse(header)
	if err != nil {
		return uuid.Nil, errOwnerInvalid
	}

	return id, nil
}
