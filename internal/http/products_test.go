package handlers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct(categoryID int64) map[string]any {
	return map[string]any{
		"name":          "iPhone 13",
		"price":         4999.90,
		"stockQuantity": 10,
		"photos":        []string{"frente.png", "verso.png"},
		"characteristics": []map[string]string{
			{"name": "cor", "value": "azul"},
			{"name": "memoria", "value": "128GB"},
			{"name": "tela", "value": "6.1"},
		},
		"description": "Smartphone",
		"categoryId":  categoryID,
	}
}

// catalog seeds an owner and a category and returns a token with every scope.
func catalog(t *testing.T, a *testApp) (string, int64) {
	t.Helper()
	a.seedUser(t, "owner@zup.com.br")
	tok := token(t, "owner@zup.com.br", allScopes...)
	r := a.do(t, "POST", "/api/categories", tok, map[string]any{"name": "Celulares"})
	require.Equal(t, http.StatusCreated, r.status)
	return tok, 1
}

func createProduct(t *testing.T, a *testApp, tok string, body map[string]any) string {
	t.Helper()
	r := a.do(t, "POST", "/api/products", tok, body)
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	require.True(t, strings.HasPrefix(r.location, "/api/products/"))
	return strings.TrimPrefix(r.location, "/api/products/")
}

func TestCreateProduct(t *testing.T) {
	a := newTestApp(t)
	tok, cat := catalog(t, a)

	id := createProduct(t, a, tok, validProduct(cat))
	assert.Len(t, id, 36)
	assert.Equal(t, 1, a.count(t, "products"))
	assert.Equal(t, 2, a.count(t, "product_photos"))
	assert.Equal(t, 3, a.count(t, "product_characteristics"))
}

func TestCreateProductInvalid(t *testing.T) {
	a := newTestApp(t)
	tok, cat := catalog(t, a)

	body := validProduct(cat)
	body["name"] = " "
	body["price"] = 0
	body["description"] = strings.Repeat("a", 1001)
	body["characteristics"] = []map[string]string{{"name": "cor", "value": "azul"}}

	r := a.do(t, "POST", "/api/products", tok, body)
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.ElementsMatch(t, []string{
		"O campo characteristics size must be between 3 and 2147483647",
		"O campo description length must be between 0 and 1000",
		"O campo price must be greater than or equal to 0.01",
		"O campo name must not be blank",
	}, r.mensagens)
	assert.Equal(t, 0, a.count(t, "products"))
}

func TestCreateProductUnknownCategory(t *testing.T) {
	a := newTestApp(t)
	tok, _ := catalog(t, a)

	r := a.do(t, "POST", "/api/products", tok, validProduct(999))
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, []string{"O campo categoryId categoryId is not registered"}, r.mensagens)
	assert.Equal(t, 0, a.count(t, "products"))
}

func TestProductDetails(t *testing.T) {
	a := newTestApp(t)
	tok, cat := catalog(t, a)
	id := createProduct(t, a, tok, validProduct(cat))

	for _, rating := range []int{5, 2} {
		r := a.do(t, "POST", "/api/opinions", tok, map[string]any{
			"rating": rating, "title": "Opinião", "description": "ok", "productId": id,
		})
		require.Equal(t, http.StatusCreated, r.status)
		assert.Regexp(t, `^/api/opinions/\d+$`, r.location)
	}
	r := a.do(t, "POST", "/api/products/"+id+"/questions", tok, map[string]any{"title": "Tem garantia?"})
	require.Equal(t, http.StatusCreated, r.status)

	r = a.do(t, "GET", "/api/products/"+id, tok, nil)
	require.Equal(t, http.StatusOK, r.status)

	var d struct {
		ID            string   `json:"id"`
		Name          string   `json:"name"`
		Price         string   `json:"price"`
		StockQuantity int      `json:"stockQuantity"`
		Photos        []string `json:"photos"`
		Category      struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"category"`
		Characteristics []map[string]string `json:"characteristics"`
		AverageRating   float64             `json:"averageRating"`
		TotalOpinions   int                 `json:"totalOpinions"`
		Questions       []struct {
			Title string `json:"title"`
		} `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(r.body, &d))
	assert.Equal(t, id, d.ID)
	assert.Equal(t, "4999.90", d.Price)
	assert.Equal(t, 10, d.StockQuantity)
	assert.Equal(t, []string{"https://bucket.io/frente.png", "https://bucket.io/verso.png"}, d.Photos)
	assert.Equal(t, "Celulares", d.Category.Name)
	assert.Len(t, d.Characteristics, 3)
	assert.Equal(t, 2, d.TotalOpinions)
	assert.InDelta(t, 3.5, d.AverageRating, 0.001)
	require.Len(t, d.Questions, 1)
	assert.Equal(t, "Tem garantia?", d.Questions[0].Title)
}

func TestProductDetailsNotFound(t *testing.T) {
	a := newTestApp(t)
	tok, _ := catalog(t, a)
	r := a.do(t, "GET", "/api/products/00000000-0000-0000-0000-000000000000", tok, nil)
	assert.Equal(t, http.StatusNotFound, r.status)
}

func TestCreateOpinionInvalid(t *testing.T) {
	a := newTestApp(t)
	tok, cat := catalog(t, a)
	id := createProduct(t, a, tok, validProduct(cat))

	r := a.do(t, "POST", "/api/opinions", tok, map[string]any{
		"rating": 0, "title": "", "description": strings.Repeat("a", 501), "productId": id,
	})
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.ElementsMatch(t, []string{
		"O campo title must not be blank",
		"O campo rating must be between 1 and 5",
		"O campo description length must be between 0 and 500",
	}, r.mensagens)

	r = a.do(t, "POST", "/api/opinions", tok, map[string]any{
		"rating": 3, "title": "ok", "productId": "7b4e9a7e-2a1f-4f1e-9d63-6b1a5b2f0c11",
	})
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, []string{"O campo productId productId is not registered"}, r.mensagens)
	assert.Equal(t, 0, a.count(t, "opinions"))
}

func TestQuestions(t *testing.T) {
	a := newTestApp(t)
	tok, cat := catalog(t, a)
	id := createProduct(t, a, tok, validProduct(cat))
	logs := observeLogs(t)

	r := a.do(t, "POST", "/api/products/"+id+"/questions", tok, map[string]any{"title": ""})
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, []string{"O campo title não deve estar em branco"}, r.mensagens)

	r = a.do(t, "POST", "/api/products/missing/questions", tok, map[string]any{"title": "Oi?"})
	assert.Equal(t, http.StatusNotFound, r.status)

	r = a.do(t, "POST", "/api/products/"+id+"/questions", tok, map[string]any{"title": "Aceita troca?"})
	require.Equal(t, http.StatusCreated, r.status)
	assert.Regexp(t, `^/api/products/`+id+`/questions/\d+$`, r.location)

	mails := logs.FilterMessage("mail.sent").All()
	require.Len(t, mails, 1)
	assert.Equal(t, "owner@zup.com.br", mails[0].ContextMap()["to"])

	r = a.do(t, "GET", "/api/products/"+id+"/questions", tok, nil)
	require.Equal(t, http.StatusOK, r.status)
	assert.Contains(t, string(r.body), "Aceita troca?")

	r = a.do(t, "GET", "/api/products/missing/questions", tok, nil)
	assert.Equal(t, http.StatusNotFound, r.status)
}
