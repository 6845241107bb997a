package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"package_features/internal/models"
	"package_features/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgFeatureNotFound = "Feature not found."
	msgFeatureDeleted  = "Feature soft deleted successfully."

	errCreateFeature = "An error occurred while creating the feature."
	errFetchFeatures = "An error occurred while fetching features."
	errFetchFeature  = "An error occurred while fetching the feature."
	errUpdateFeature = "An error occurred while updating the feature."
	errDeleteFeature = "An error occurred while soft deleting the feature."
)

type CreateFeatureRequest struct {
	Name        string `json:"name" example:"Priority support"`
	Description string `json:"description" example:"24/7 phone line"`
}

// UpdateFeatureRequest overwrites the fields present in the body, empty strings included.
type UpdateFeatureRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func featureSubject(id int) string { return fmt.Sprintf("feature:%d", id) }

// @Summary      Create feature
// @Tags         features
// @Accept       json
// @Produce      json
// @Param        body  body  CreateFeatureRequest  true  "Feature payload"
// @Success      201  {object}  models.PackageFeature
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /features [post]
func (h *Handler) createFeature(c *gin.Context) {
	var req CreateFeatureRequest
	if ok := h.bindJSONOrBadRequest(c, &req, ""); !ok {
		return
	}
	f, err := h.services.Features.Create(c.Request.Context(), service.FeatureInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errCreateFeature, "feature_create_failed", err, "name", req.Name)
		return
	}
	h.audit(c, callerID(c), models.EventFeatureCreated, featureSubject(f.ID), "feature created", map[string]any{"name": f.Name})
	c.JSON(http.StatusCreated, f)
}

// @Summary      List features
// @Description  Every feature regardless of status unless a status filter is given.
// @Tags         features
// @Produce      json
// @Param        status  query  string  false  "Status filter"  Enums(active,inactive)
// @Success      200  {array}   models.PackageFeature
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /features [get]
func (h *Handler) listFeatures(c *gin.Context) {
	status := statusQuery(c)
	features, err := h.services.Features.List(c.Request.Context(), status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errFetchFeatures, "features_list_failed", err, "status", status)
		return
	}
	if features == nil {
		features = []models.PackageFeature{}
	}
	c.JSON(http.StatusOK, features)
}

// @Summary      Get feature
// @Tags         features
// @Produce      json
// @Param        id   path  int  true  "Feature ID"
// @Success      200  {object}  models.PackageFeature
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /features/{id} [get]
func (h *Handler) getFeature(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	f, err := h.services.Features.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFeatureNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgFeatureNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errFetchFeature, "feature_get_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, f)
}

// @Summary      Update feature
// @Tags         features
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "Feature ID"
// @Param        body  body  UpdateFeatureRequest  true  "Fields to change"
// @Success      200  {object}  models.PackageFeature
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /features/{id} [put]
func (h *Handler) updateFeature(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateFeatureRequest
	if ok := h.bindJSONOrBadRequest(c, &req, ""); !ok {
		return
	}
	f, err := h.services.Features.Update(c.Request.Context(), id, service.FeaturePatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrFeatureNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgFeatureNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errUpdateFeature, "feature_update_failed", err, "id", id)
		return
	}
	h.audit(c, callerID(c), models.EventFeatureUpdated, featureSubject(f.ID), "feature updated", nil)
	c.JSON(http.StatusOK, f)
}

// @Summary      Soft delete feature
// @Tags         features
// @Produce      json
// @Param        id   path  int  true  "Feature ID"
// @Success      200  {object}  map[string]interface{}  "message, feature"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /features/{id} [delete]
func (h *Handler) deleteFeature(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	f, err := h.services.Features.SoftDelete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFeatureNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgFeatureNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteFeature, "feature_delete_failed", err, "id", id)
		return
	}
	h.audit(c, callerID(c), models.EventFeatureDeleted, featureSubject(f.ID), "feature soft deleted", nil)
	c.JSON(http.StatusOK, gin.H{"message": msgFeatureDeleted, "feature": f})
}
