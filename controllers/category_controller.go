// controllers/category_controller.go
package controllers

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velomart/admin_backend/models"
	"github.com/velomart/admin_backend/utils"
)

type CategoryController struct {
	DB *mongo.Database
}

func NewCategoryController(db *mongo.Database) *CategoryController {
	return &CategoryController{DB: db}
}

// CreateCategory creates a new category with optional logo upload and
// subcategories. The catalog is global; there is no country field.
func (cc *CategoryController) CreateCategory(c echo.Context) error {
	categoryName := c.FormValue("name")
	if categoryName == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Category name is required",
		})
	}

	// Comma-separated subcategory names
	var subcategoriesList []string
	if subcategories := c.FormValue("subcategories"); subcategories != "" {
		for _, sub := range strings.Split(subcategories, ",") {
			if trimmed := strings.TrimSpace(sub); trimmed != "" {
				subcategoriesList = append(subcategoriesList, trimmed)
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var existingCategory models.Category
	err := cc.DB.Collection("categories").FindOne(ctx, bson.M{"name": categoryName}).Decode(&existingCategory)
	if err == nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Category with this name already exists",
		})
	}

	category := models.Category{
		Name:          categoryName,
		Color:         c.FormValue("color"),
		Subcategories: subcategoriesList,
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	result, err := cc.DB.Collection("categories").InsertOne(ctx, category)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create category",
		})
	}
	category.ID = result.InsertedID.(primitive.ObjectID)

	// Optional logo upload; a failed upload does not fail the create
	if file, err := c.FormFile("logo"); err == nil && file != nil {
		if logoURL, uploadErr := cc.saveLogo(file); uploadErr == nil {
			_, _ = cc.DB.Collection("categories").UpdateOne(ctx,
				bson.M{"_id": category.ID},
				bson.M{"$set": bson.M{"logo": logoURL}})
			category.Logo = logoURL
		} else {
			return c.JSON(http.StatusCreated, models.Response{
				Status:  http.StatusCreated,
				Message: "Category created successfully, but logo upload failed: " + uploadErr.Error(),
				Data:    category,
			})
		}
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Category created successfully",
		Data:    category,
	})
}

func (cc *CategoryController) saveLogo(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	fileData, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	return utils.UploadFileToPath(fileData, file.Filename, "image", "category")
}

// GetCategories lists all categories
func (cc *CategoryController) GetCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := cc.DB.Collection("categories").Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve categories",
		})
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode categories",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Categories retrieved successfully",
		Data:    categories,
	})
}

// UpdateCategory updates name, color, subcategories or active flag
func (cc *CategoryController) UpdateCategory(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid category ID",
		})
	}

	var req struct {
		Name          string   `json:"name"`
		Color         string   `json:"color"`
		Subcategories []string `json:"subcategories"`
		IsActive      *bool    `json:"isActive"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Color != "" {
		update["color"] = req.Color
	}
	if req.Subcategories != nil {
		update["subcategories"] = req.Subcategories
	}
	if req.IsActive != nil {
		update["isActive"] = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cc.DB.Collection("categories").UpdateOne(ctx,
		bson.M{"_id": objID}, bson.M{"$set": update})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update category",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Category not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Category updated successfully",
	})
}

// DeleteCategory removes a category
func (cc *CategoryController) DeleteCategory(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid category ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cc.DB.Collection("categories").DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete category",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Category not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Category deleted successfully",
	})
}

// GetSubcategories lists standalone subcategory records, optionally
// filtered by category
func (cc *CategoryController) GetSubcategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if categoryID := c.QueryParam("categoryId"); categoryID != "" {
		objID, err := primitive.ObjectIDFromHex(categoryID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid category ID",
			})
		}
		filter["categoryId"] = objID
	}

	cursor, err := cc.DB.Collection("subcategories").Find(ctx, filter,
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve subcategories",
		})
	}
	defer cursor.Close(ctx)

	var subcategories []models.Subcategory
	if err := cursor.All(ctx, &subcategories); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode subcategories",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Subcategories retrieved successfully",
		Data:    subcategories,
	})
}

// CreateSubcategory adds a subcategory under a category
func (cc *CategoryController) CreateSubcategory(c echo.Context) error {
	var req struct {
		CategoryID string `json:"categoryId" validate:"required"`
		Name       string `json:"name" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Category ID and name are required",
		})
	}

	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid category ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := cc.DB.Collection("categories").CountDocuments(ctx, bson.M{"_id": categoryID})
	if err != nil || count == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Category not found",
		})
	}

	subcategory := models.Subcategory{
		CategoryID: categoryID,
		Name:       req.Name,
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	result, err := cc.DB.Collection("subcategories").InsertOne(ctx, subcategory)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create subcategory",
		})
	}
	subcategory.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Subcategory created successfully",
		Data:    subcategory,
	})
}

// DeleteSubcategory removes a subcategory record
func (cc *CategoryController) DeleteSubcategory(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid subcategory ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cc.DB.Collection("subcategories").DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete subcategory",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Subcategory not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Subcategory deleted successfully",
	})
}
