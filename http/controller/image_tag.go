package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/memecataloger/catalog-api/entity"
	"github.com/memecataloger/catalog-api/repository"
	"github.com/memecataloger/catalog-api/utils"
)

const cacheKeyImageTagList = "imagetags:list"

const newImageTagUsage = "Requires POST request with data:" +
	"{" +
	"  user-id: uuid of resource owner," +
	"  image-id: uuid of image to apply tag," +
	"  tag-id: uuid of tag to apply to image " +
	"}"

func serializeImageTag(imageTag *entity.ImageTag) gin.H {
	return gin.H{
		"id":       imageTag.ID.String(),
		"image_id": imageTag.ImageID.String(),
		"tag_id":   imageTag.TagID.String(),
	}
}

func (ctrl *Controller) ListImageTags(c *gin.Context) {
	ctx := c.Request.Context()

	if ctrl.cachedList(c, cacheKeyImageTagList) {
		return
	}

	imageTags, err := ctrl.Repository.ImageTagRepo.FindAll()
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[ImageTag] Failed to list image tags")
		utils.JSON500(c, "Failed to list image tags")
		return
	}

	payload := make([]gin.H, 0, len(imageTags))
	for i := range imageTags {
		payload = append(payload, serializeImageTag(&imageTags[i]))
	}
	ctrl.storeList(ctx, cacheKeyImageTagList, payload)
	utils.JSON200(c, payload)
}

func (ctrl *Controller) NewImageTagView(c *gin.Context) {
	ctrl.dispatch(c, []string{"GET", "POST"}, map[string]gin.HandlerFunc{
		"GET":  ctrl.newImageTagUsageView,
		"POST": ctrl.createImageTag,
	})
}

func (ctrl *Controller) newImageTagUsageView(c *gin.Context) {
	c.String(200, newImageTagUsage)
}

func (ctrl *Controller) createImageTag(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := uuid.Parse(c.PostForm("user-id"))
	if err != nil {
		utils.Text400(c, newImageTagUsage)
		return
	}
	imageID, err := uuid.Parse(c.PostForm("image-id"))
	if err != nil {
		utils.Text400(c, newImageTagUsage)
		return
	}
	tagID, err := uuid.Parse(c.PostForm("tag-id"))
	if err != nil {
		utils.Text400(c, newImageTagUsage)
		return
	}

	image, err := ctrl.Repository.ImageRepo.FindByID(imageID)
	if err != nil {
		utils.Text400(c, newImageTagUsage)
		return
	}
	if _, err := ctrl.Repository.TagRepo.FindByID(tagID); err != nil {
		utils.Text400(c, newImageTagUsage)
		return
	}

	// Tagging someone else's image is the one ownership rule already
	// enforced without auth.
	if image.OwnerID != userID {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[ImageTag] User %s attempted to tag image %s owned by %s", userID, imageID, image.OwnerID)
		utils.JSON403(c, "Forbidden: you don't own this image")
		return
	}

	imageTag := &entity.ImageTag{
		ID:      uuid.New(),
		ImageID: imageID,
		TagID:   tagID,
	}
	if err := ctrl.Repository.ImageTagRepo.Create(imageTag); err != nil {
		if errors.Is(err, repository.ErrImageAlreadyTagged) {
			utils.JSON409(c, "Image already carries this tag")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[ImageTag] Failed to tag image %s with %s", imageID, tagID)
		utils.JSON500(c, "Failed to create image tag")
		return
	}

	ctrl.invalidateList(ctx, cacheKeyImageTagList)
	ctrl.Infra.Logger.InfoWithContextf(ctx, "[ImageTag] Tagged image %s with tag %s (%s)", imageID, tagID, imageTag.ID)
	utils.JSON200(c, gin.H{"imagetag-id": imageTag.ID.String()})
}

func (ctrl *Controller) ExistingImageTagView(c *gin.Context) {
	ctrl.dispatch(c, []string{"GET", "DELETE"}, map[string]gin.HandlerFunc{
		"GET":    ctrl.getImageTag,
		"DELETE": ctrl.deleteImageTag,
	})
}

func (ctrl *Controller) getImageTag(c *gin.Context) {
	imageTagID, err := uuid.Parse(c.Param("imagetag_id"))
	if err != nil {
		utils.Status400(c)
		return
	}

	imageTag, err := ctrl.Repository.ImageTagRepo.FindByID(imageTagID)
	if err != nil {
		utils.Status400(c)
		return
	}

	utils.JSON200(c, gin.H{
		"imagetag-id": imageTag.ID.String(),
		"image-id":    imageTag.ImageID.String(),
		"tag-id":      imageTag.TagID.String(),
	})
}

func (ctrl *Controller) deleteImageTag(c *gin.Context) {
	ctx := c.Request.Context()

	imageTagID, err := uuid.Parse(c.Param("imagetag_id"))
	if err != nil {
		utils.Status400(c)
		return
	}

	if _, err := ctrl.Repository.ImageTagRepo.FindByID(imageTagID); err != nil {
		utils.Status400(c)
		return
	}

	if err := ctrl.Repository.ImageTagRepo.Delete(imageTagID); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[ImageTag] Failed to delete image tag %s", imageTagID)
		utils.JSON500(c, "Failed to delete image tag")
		return
	}

	ctrl.invalidateList(ctx, cacheKeyImageTagList)
	ctrl.Infra.Logger.InfoWithContextf(ctx, "[ImageTag] Deleted image tag %s", imageTagID)
	utils.JSON200(c, gin.H{"imagetag-id": imageTagID.String()})
}
