package controllers

import (
	"net/http"
	"strings"

	"paridade/store"

	"github.com/gin-gonic/gin"
)

type productInput struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// GET /api/products
// Query params:
// - limit (optional)
func GetProducts(c *gin.Context) {
	userID, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	env := EnvInstance(c)

	limit := queryInt(c, "limit", 0)
	products, err := env.Products.GetProducts(userID, limit)
	if err != nil {
		RespondError(c, "erro ao listar produtos", http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"products": products})
}

// GET /api/products/:productId
func GetProductByID(c *gin.Context) {
	userID, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	env := EnvInstance(c)

	product, err := env.Products.GetProduct(c.Param("productId"), userID)
	if err == store.ErrNotFound {
		RespondError(c, "produto não encontrado", http.StatusNotFound)
		return
	}
	if err != nil {
		RespondError(c, "erro ao buscar produto", http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, product)
}

// POST /api/products
// Criação é atômica com a customização default: ou os dois persistem, ou nenhum.
func CreateProduct(c *gin.Context) {
	userID, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	env := EnvInstance(c)

	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, "payload inválido", http.StatusBadRequest)
		return
	}
	if fields := validateProductInput(in); len(fields) > 0 {
		RespondValidationError(c, fields)
		return
	}

	if !env.Perms.CanCreateProduct(userID) {
		RespondError(c, "limite de produtos do plano atingido", http.StatusForbidden)
		return
	}

	product, err := env.Products.CreateProduct(userID, strings.TrimSpace(in.Name), strings.TrimSpace(in.URL), in.Description)
	if err != nil {
		RespondError(c, "erro ao criar produto", http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// PUT /api/products/:productId
func UpdateProduct(c *gin.Context) {
	userID, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	env := EnvInstance(c)

	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, "payload inválido", http.StatusBadRequest)
		return
	}
	if fields := validateProductInput(in); len(fields) > 0 {
		RespondValidationError(c, fields)
		return
	}

	updated, err := env.Products.UpdateProduct(c.Param("productId"), userID, strings.TrimSpace(in.Name), strings.TrimSpace(in.URL), in.Description)
	if err != nil {
		RespondError(c, "erro ao atualizar produto", http.StatusInternalServerError)
		return
	}
	if !updated {
		RespondError(c, "produto não encontrado", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"updated": true})
}

// DELETE /api/products/:productId
func DeleteProduct(c *gin.Context) {
	userID, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	env := EnvInstance(c)

	deleted, err := env.Products.DeleteProduct(c.Param("productId"), userID)
	if err != nil {
		RespondError(c, "erro ao remover produto", http.StatusInternalServerError)
		return
	}
	if !deleted {
		RespondError(c, "produto não encontrado", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"deleted": true})
}

func validateProductInput(in productInput) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "obrigatório"
	}
	if strings.TrimSpace(in.URL) == "" {
		fields["url"] = "obrigatório"
	} else if !strings.Contains(in.URL, ".") {
		fields["url"] = "url inválida"
	}
	return fields
}
