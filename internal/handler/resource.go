package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/bruno-duarte/afinpe-api/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// query parameters never interpreted as field filters
var reservedParams = map[string]bool{
	"page":      true,
	"page_size": true,
	"ordering":  true,
	"search":    true,
	"token":     true,
}

// Resource is the CRUD surface shared by the plain entities: list with
// field-equality filters, ordering and optional pagination, fetch by id,
// create, full and partial update, delete. Each entity gets its own
// statically registered route set instead of a dynamic dispatch layer.
type Resource[T any] struct {
	DB       *gorm.DB
	PageSize int

	// query param / json field name -> database column
	columns map[string]string
}

var schemaCache = &sync.Map{}

func NewResource[T any](db *gorm.DB, pageSize int) *Resource[T] {
	if pageSize <= 0 {
		pageSize = 50
	}
	r := &Resource[T]{DB: db, PageSize: pageSize, columns: map[string]string{}}

	sch, err := schema.Parse(new(T), schemaCache, schema.NamingStrategy{})
	if err != nil {
		// only happens for a non-struct T, which Register never sees
		return r
	}
	for _, f := range sch.Fields {
		if f.DBName == "" {
			continue
		}
		jsonName := strings.Split(f.StructField.Tag.Get("json"), ",")[0]
		if jsonName != "" && jsonName != "-" {
			r.columns[jsonName] = f.DBName
		}
		r.columns[f.DBName] = f.DBName
	}
	return r
}

// Register wires the full method set under the given path.
func (r *Resource[T]) Register(rg *gin.RouterGroup, path string) {
	rg.GET("/"+path, r.List)
	rg.POST("/"+path, r.Create)
	r.registerItemRoutes(rg, path)
}

// RegisterWithoutCreate wires everything except POST, for entities whose
// rows are produced elsewhere (people and users come from registration).
func (r *Resource[T]) RegisterWithoutCreate(rg *gin.RouterGroup, path string) {
	rg.GET("/"+path, r.List)
	r.registerItemRoutes(rg, path)
}

func (r *Resource[T]) registerItemRoutes(rg *gin.RouterGroup, path string) {
	rg.GET("/"+path+"/:id", r.Get)
	rg.PUT("/"+path+"/:id", r.Update)
	rg.PATCH("/"+path+"/:id", r.Patch)
	rg.DELETE("/"+path+"/:id", r.Delete)
}

// List returns the full result set when no page parameter is given,
// otherwise a paginated envelope. Any known field name in the query
// string becomes an equality filter; ordering accepts "field" or
// "-field". Unknown parameters are ignored.
func (r *Resource[T]) List(c *gin.Context) {
	q := r.DB.Model(new(T))

	for param, values := range c.Request.URL.Query() {
		if reservedParams[param] || len(values) == 0 {
			continue
		}
		if col, ok := r.columns[param]; ok {
			q = q.Where(col+" = ?", values[0])
		}
	}

	if ordering := c.Query("ordering"); ordering != "" {
		name := strings.TrimPrefix(ordering, "-")
		if col, ok := r.columns[name]; ok {
			if strings.HasPrefix(ordering, "-") {
				q = q.Order(col + " DESC")
			} else {
				q = q.Order(col)
			}
		}
	}

	if c.Query("page") == "" {
		var items []T
		if err := q.Find(&items).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "list failed")
			return
		}
		util.JSON(c, items)
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(r.PageSize)))
	if size <= 0 || size > 200 {
		size = r.PageSize
	}

	var count int64
	if err := q.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "count failed")
		return
	}

	var items []T
	if err := q.Session(&gorm.Session{}).
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "list failed")
		return
	}

	util.JSON(c, gin.H{
		"count":    count,
		"page":     page,
		"pageSize": size,
		"results":  items,
	})
}

func (r *Resource[T]) Get(c *gin.Context) {
	var item T
	err := r.DB.First(&item, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "not found")
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "load failed")
		return
	}
	util.JSON(c, item)
}

func (r *Resource[T]) Create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid payload")
		return
	}
	if err := r.DB.Omit(clause.Associations).Create(&item).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create failed")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (r *Resource[T]) Update(c *gin.Context) {
	id := c.Param("id")

	var existing T
	err := r.DB.First(&existing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "not found")
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "load failed")
		return
	}

	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid payload")
		return
	}
	setStringID(&item, id)

	if err := r.DB.Omit(clause.Associations).Save(&item).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save failed")
		return
	}
	util.JSON(c, item)
}

func (r *Resource[T]) Patch(c *gin.Context) {
	id := c.Param("id")

	var existing T
	err := r.DB.First(&existing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "not found")
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "load failed")
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid payload")
		return
	}

	updates := map[string]interface{}{}
	for k, v := range payload {
		if col, ok := r.columns[k]; ok && col != "id" {
			updates[col] = v
		}
	}
	if len(updates) > 0 {
		if err := r.DB.Model(&existing).Updates(updates).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update failed")
			return
		}
	}

	if err := r.DB.First(&existing, "id = ?", id).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "load failed")
		return
	}
	util.JSON(c, existing)
}

func (r *Resource[T]) Delete(c *gin.Context) {
	res := r.DB.Delete(new(T), "id = ?", c.Param("id"))
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete failed")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// setStringID forces the path id onto the bound object so a PUT body
// cannot move a row to another identity.
func setStringID(obj interface{}, id string) {
	v := reflect.ValueOf(obj).Elem().FieldByName("ID")
	if v.IsValid() && v.CanSet() && v.Kind() == reflect.String {
		v.SetString(id)
	}
}
