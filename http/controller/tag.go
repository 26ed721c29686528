package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/memecataloger/catalog-api/entity"
	"github.com/memecataloger/catalog-api/http/controller/dto"
	"github.com/memecataloger/catalog-api/utils"
	"gorm.io/gorm"
)

const cacheKeyTagList = "tags:list"

// newTagUsage is served on GET and echoed on any rejected POST. The
// spacing is part of the contract; clients match it verbatim.
const newTagUsage = "Requires POST request with data:" +
	"{" +
	"  user-id: uuid of resource owner," +
	"  tag-name: string name to give specified tag " +
	"}"

func serializeTag(tag *entity.Tag) gin.H {
	return gin.H{
		"id":    tag.ID.String(),
		"name":  tag.Name,
		"owner": tag.OwnerID.String(),
	}
}

func (ctrl *Controller) ListTags(c *gin.Context) {
	ctx := c.Request.Context()

	if ctrl.cachedList(c, cacheKeyTagList) {
		return
	}

	tags, err := ctrl.Repository.TagRepo.FindAll()
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Tag] Failed to list tags")
		utils.JSON500(c, "Failed to list tags")
		return
	}

	payload := make([]gin.H, 0, len(tags))
	for i := range tags {
		payload = append(payload, serializeTag(&tags[i]))
	}
	ctrl.storeList(ctx, cacheKeyTagList, payload)
	utils.JSON200(c, payload)
}

func (ctrl *Controller) NewTagView(c *gin.Context) {
	ctrl.dispatch(c, []string{"GET", "POST"}, map[string]gin.HandlerFunc{
		"GET":  ctrl.newTagUsageView,
		"POST": ctrl.createTag,
	})
}

func (ctrl *Controller) newTagUsageView(c *gin.Context) {
	c.String(200, newTagUsage)
}

func (ctrl *Controller) createTag(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, err := uuid.Parse(c.PostForm("user-id"))
	if err != nil {
		utils.Text400(c, newTagUsage)
		return
	}
	name := c.PostForm("tag-name")
	if name == "" {
		utils.Text400(c, newTagUsage)
		return
	}

	if _, err := ctrl.Repository.UserRepo.FindByID(ownerID); err != nil {
		utils.Text400(c, newTagUsage)
		return
	}

	tag := &entity.Tag{
		ID:      uuid.New(),
		Name:    name,
		OwnerID: ownerID,
	}
	if err := ctrl.Repository.TagRepo.Create(tag); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Tag] Failed to create tag %s", name)
		utils.JSON500(c, "Failed to create tag")
		return
	}

	ctrl.invalidateList(ctx, cacheKeyTagList)
	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Tag] Created tag %s (%s) for user %s", name, tag.ID, ownerID)
	utils.JSON200(c, gin.H{
		"tag-id":   tag.ID.String(),
		"tag-name": tag.Name,
	})
}

func (ctrl *Controller) ExistingTagView(c *gin.Context) {
	ctrl.dispatch(c, []string{"GET", "PUT", "DELETE"}, map[string]gin.HandlerFunc{
		"GET":    ctrl.getTag,
		"PUT":    ctrl.updateTag,
		"DELETE": ctrl.deleteTag,
	})
}

func (ctrl *Controller) getTag(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("tag_id"))
	if err != nil {
		utils.Status400(c)
		return
	}

	tag, err := ctrl.Repository.TagRepo.FindByID(tagID)
	if err != nil {
		utils.Status400(c)
		return
	}

	utils.JSON200(c, gin.H{
		"tag-id":    tag.ID.String(),
		"tag-name":  tag.Name,
		"tag-owner": tag.OwnerID.String(),
	})
}

func (ctrl *Controller) updateTag(c *gin.Context) {
	ctx := c.Request.Context()

	tagID, err := uuid.Parse(c.Param("tag_id"))
	if err != nil {
		utils.Status400(c)
		return
	}

	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TagName == nil {
		utils.Status400(c)
		return
	}

	if _, err := ctrl.Repository.TagRepo.FindByID(tagID); err != nil {
		utils.Status400(c)
		return
	}

	if err := ctrl.Repository.TagRepo.UpdateName(tagID, *req.TagName); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Tag] Failed to rename tag %s", tagID)
		utils.JSON500(c, "Failed to update tag")
		return
	}

	ctrl.invalidateList(ctx, cacheKeyTagList)
	utils.JSON200(c, gin.H{
		"tag-id":   tagID.String(),
		"tag-name": *req.TagName,
	})
}

func (ctrl *Controller) deleteTag(c *gin.Context) {
	ctx := c.Request.Context()

	tagID, err := uuid.Parse(c.Param("tag_id"))
	if err != nil {
		utils.Status400(c)
		return
	}

	if _, err := ctrl.Repository.TagRepo.FindByID(tagID); err != nil {
		utils.Status400(c)
		return
	}

	// Associations go with the tag in one transaction.
	err = ctrl.Infra.Postgres.DB.Transaction(func(tx *gorm.DB) error {
		repo := ctrl.Repository.WithTransaction(tx)
		if err := repo.ImageTagRepo.DeleteByTagID(tagID); err != nil {
			return err
		}
		return repo.TagRepo.Delete(tagID)
	})
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Tag] Failed to delete tag %s", tagID)
		utils.JSON500(c, "Failed to delete tag")
		return
	}

	ctrl.invalidateList(ctx, cacheKeyTagList, cacheKeyImageTagList)
	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Tag] Deleted tag %s", tagID)
	utils.JSON200(c, gin.H{"tag-id": tagID.String()})
}
