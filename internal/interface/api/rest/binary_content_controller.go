package rest

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-presence-api/internal/application/ports"
	"user-presence-api/internal/interface/api/rest/dto/binary_content"
	"user-presence-api/internal/interface/api/rest/validator"
)

type BinaryContentController struct {
	binaryContentService ports.BinaryContentService
	logger               *zap.Logger
}

func NewBinaryContentController(
	r *gin.Engine,
	binaryContentService ports.BinaryContentService,
	logger *zap.Logger,
) *BinaryContentController {
	bcc := &BinaryContentController{
		binaryContentService: binaryContentService,
		logger:               logger,
	}

	r.GET(RouteBinaryContents, bcc.GetBinaryContentsHandler)
	r.GET(RouteBinaryContent, bcc.GetBinaryContentHandler)
	r.GET(RouteBinaryContentDownload, bcc.DownloadHandler)

	return bcc
}

// GetBinaryContentsHandler serves ?ids=a,b; unknown ids are left out.
func (bcc *BinaryContentController) GetBinaryContentsHandler(c *gin.Context) {
	ids, err := validator.ParseUUIDs(c.Query("ids"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	cs, err := bcc.binaryContentService.FindAllMetadataByIDs(c.Request.Context(), ids)
	if err != nil {
		respondError(c, bcc.logger, "FindAllMetadataByIDs()", "failed to get binary contents", err)
		return
	}

	c.JSON(http.StatusOK, binary_content.ResponseData{
		Data: binary_content.ToResponseBinaryContents(cs),
	})
}

func (bcc *BinaryContentController) GetBinaryContentHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("content_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "content_id must be a valid UUID"},
		)
		return
	}

	bc, err := bcc.binaryContentService.FindMetadata(c.Request.Context(), id)
	if err != nil {
		respondError(c, bcc.logger, "FindMetadata()", "failed to get binary content", err)
		return
	}

	c.JSON(http.StatusOK, binary_content.ToResponseBinaryContent(*bc))
}

func (bcc *BinaryContentController) DownloadHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("content_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "content_id must be a valid UUID"},
		)
		return
	}

	bc, err := bcc.binaryContentService.Find(c.Request.Context(), id)
	if err != nil {
		respondError(c, bcc.logger, "Find()", "failed to get binary content", err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": bc.FileName}))
	c.Data(http.StatusOK, bc.ContentType, bc.Bytes)
}
