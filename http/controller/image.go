package controller

import (
	"encoding/json"
	"io"
	"mime"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/memecataloger/catalog-api/entity"
	"github.com/memecataloger/catalog-api/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const cacheKeyImageList = "images:list"

const newImageUsage = "Requires POST request with data:" +
	"{" +
	"  user-id: uuid of resource owner," +
	"  image: file to store," +
	"  description: optional string describing the image " +
	"}"

func (ctrl *Controller) serializeImage(image *entity.Image) gin.H {
	return gin.H{
		"id":          image.ID.String(),
		"source":      ctrl.Infra.Storage.URL(image.Source),
		"owner":       image.OwnerID.String(),
		"description": image.Description,
	}
}

func (ctrl *Controller) ListImages(c *gin.Context) {
	ctx := c.Request.Context()

	if ctrl.cachedList(c, cacheKeyImageList) {
		return
	}

	images, err := ctrl.Repository.ImageRepo.FindAll()
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to list images")
		utils.JSON500(c, "Failed to list images")
		return
	}

	payload := make([]gin.H, 0, len(images))
	for i := range images {
		payload = append(payload, ctrl.serializeImage(&images[i]))
	}
	ctrl.storeList(ctx, cacheKeyImageList, payload)
	utils.JSON200(c, payload)
}

func (ctrl *Controller) NewImageView(c *gin.Context) {
	ctrl.dispatch(c, []string{"GET", "POST"}, map[string]gin.HandlerFunc{
		"GET":  ctrl.newImageUsageView,
		"POST": ctrl.createImage,
	})
}

func (ctrl *Controller) newImageUsageView(c *gin.Context) {
	c.String(200, newImageUsage)
}

func (ctrl *Controller) createImage(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, err := uuid.Parse(c.PostForm("user-id"))
	if err != nil {
		utils.Text400(c, newImageUsage)
		return
	}
	if _, err := ctrl.Repository.UserRepo.FindByID(ownerID); err != nil {
		utils.Text400(c, newImageUsage)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.Text400(c, newImageUsage)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(fileHeader.Filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	imageID := uuid.New()
	source := imageID.String() + filepath.Ext(fileHeader.Filename)

	file, err := fileHeader.Open()
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to open uploaded file %s", fileHeader.Filename)
		utils.JSON500(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	if err := ctrl.Infra.Storage.Save(ctx, source, file, fileHeader.Size, contentType); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to store blob %s", source)
		utils.JSON500(c, "Failed to store image")
		return
	}

	metadata, _ := json.Marshal(map[string]string{"original_name": fileHeader.Filename})
	image := &entity.Image{
		ID:          imageID,
		Source:      source,
		OwnerID:     ownerID,
		Description: c.PostForm("description"),
		ContentType: contentType,
		Size:        fileHeader.Size,
		Metadata:    datatypes.JSON(metadata),
	}
	if err := ctrl.Repository.ImageRepo.Create(image); err != nil {
		// The row failed, keep storage consistent with the database.
		if cleanupErr := ctrl.Infra.Storage.Delete(ctx, source); cleanupErr != nil {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[Image] Failed to remove orphaned blob %s: %v", source, cleanupErr)
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to create image row for %s", source)
		utils.JSON500(c, "Failed to create image")
		return
	}

	ctrl.invalidateList(ctx, cacheKeyImageList)
	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Image] Stored image %s (%d bytes) for user %s", imageID, fileHeader.Size, ownerID)
	utils.JSON200(c, gin.H{
		"image-id":     image.ID.String(),
		"image-source": ctrl.Infra.Storage.URL(image.Source),
	})
}

func (ctrl *Controller) ExistingImageView(c *gin.Context) {
	ctrl.dispatch(c, []string{"GET", "DELETE"}, map[string]gin.HandlerFunc{
		"GET":    ctrl.getImage,
		"DELETE": ctrl.deleteImage,
	})
}

// getImage streams the blob bytes, not the metadata row.
func (ctrl *Controller) getImage(c *gin.Context) {
	ctx := c.Request.Context()

	imageID, err := uuid.Parse(c.Param("image_id"))
	if err != nil {
		utils.Status400(c)
		return
	}

	image, err := ctrl.Repository.ImageRepo.FindByID(imageID)
	if err != nil {
		utils.Status400(c)
		return
	}

	reader, err := ctrl.Infra.Storage.Get(ctx, image.Source)
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Image] Blob missing for image %s (%s): %v", imageID, image.Source, err)
		utils.Status400(c)
		return
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to read blob %s", image.Source)
		utils.JSON500(c, "Failed to read image")
		return
	}

	contentType := image.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(image.Source))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(200, contentType, data)
}

func (ctrl *Controller) deleteImage(c *gin.Context) {
	ctx := c.Request.Context()

	imageID, err := uuid.Parse(c.Param("image_id"))
	if err != nil {
		utils.Status400(c)
		return
	}

	image, err := ctrl.Repository.ImageRepo.FindByID(imageID)
	if err != nil {
		utils.Status400(c)
		return
	}

	err = ctrl.Infra.Postgres.DB.Transaction(func(tx *gorm.DB) error {
		repo := ctrl.Repository.WithTransaction(tx)
		if err := repo.ImageTagRepo.DeleteByImageID(imageID); err != nil {
			return err
		}
		return repo.ImageRepo.Delete(imageID)
	})
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to delete image %s", imageID)
		utils.JSON500(c, "Failed to delete image")
		return
	}

	// Blob cleanup goes through the queue when a broker is connected,
	// otherwise it happens inline. Either way the response does not wait
	// on storage errors; the row is already gone.
	if ctrl.Infra.Produce != nil {
		if err := ctrl.Infra.Produce.Media.PublishMediaCleanup(ctx, imageID.String(), image.Source); err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Image] Failed to enqueue cleanup for blob %s", image.Source)
		}
	} else if err := ctrl.Infra.Storage.Delete(ctx, image.Source); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Image] Failed to delete blob %s: %v", image.Source, err)
	}

	ctrl.invalidateList(ctx, cacheKeyImageList, cacheKeyImageTagList)
	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Image] Deleted image %s", imageID)
	utils.JSON200(c, gin.H{"image-id": imageID.String()})
}
