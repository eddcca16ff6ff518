package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/wekesa/daktari-api/internal/presentation/http/dto/response"
	"github.com/wekesa/daktari-api/internal/presentation/http/middleware"
	"github.com/wekesa/daktari-api/pkg/proofstore"
)

// ProofHandler handles proof-of-payment uploads. A proof must be stored
// before the payment citing it is captured, so upload is its own endpoint
// and settlement requests carry the returned reference.
type ProofHandler struct {
	store *proofstore.Store
}

// NewProofHandler creates a new proof handler
func NewProofHandler(store *proofstore.Store) *ProofHandler {
	return &ProofHandler{store: store}
}

// Upload handles POST /proofs
func (h *ProofHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A proof file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.InternalServerError(c, "Failed to read proof file")
		return
	}
	defer src.Close()

	ref, err := h.store.Save(middleware.GetClinicID(c), file.Filename, file.Size, src)
	if err != nil {
		switch {
		case errors.Is(err, proofstore.ErrTooLarge):
			response.BadRequest(c, "Proof file is too large")
		case errors.Is(err, proofstore.ErrUnsupportedType):
			response.BadRequest(c, "Proof file type is not supported")
		default:
			response.InternalServerError(c, "Failed to store proof file")
		}
		return
	}

	response.Created(c, "Proof stored", gin.H{"proof_reference": ref})
}

// Download handles GET /proofs/*ref
func (h *ProofHandler) Download(c *gin.Context) {
	ref := c.Param("ref")
	if len(ref) > 0 && ref[0] == '/' {
		ref = ref[1:]
	}

	f, err := h.store.Open(ref)
	if err != nil {
		response.NotFound(c, "Proof not found")
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/octet-stream")
	c.Status(200)
	_, _ = io.Copy(c.Writer, f)
}
