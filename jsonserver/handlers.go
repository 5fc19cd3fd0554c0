package jsonserver

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/dataprovider/errors"
)

func (s *Server) routes() {
	s.engine.GET("/:resource", s.list)
	s.engine.GET("/:resource/:id", s.get)
	s.engine.GET("/:resource/:id/:target", s.listNested)
	s.engine.POST("/:resource", s.create)
	s.engine.PUT("/:resource/:id", s.replace)
	s.engine.DELETE("/:resource/:id", s.remove)
}

func (s *Server) list(c *gin.Context) {
	resource := c.Param("resource")
	items, ok := s.store.List(resource)
	if !ok {
		respondWithError(c, errors.NotFound(resource, ""))
		return
	}
	s.respondList(c, parseListQuery(c.Request.URL.Query()), items)
}

func (s *Server) get(c *gin.Context) {
	resource, id := c.Param("resource"), c.Param("id")
	item, ok := s.store.Get(resource, id)
	if !ok {
		respondWithError(c, errors.NotFound(resource, id))
		return
	}
	c.JSON(http.StatusOK, item)
}

// listNested serves /posts/1/comments as /comments?postId=1.
func (s *Server) listNested(c *gin.Context) {
	resource, id, target := c.Param("resource"), c.Param("id"), c.Param("target")
	if _, ok := s.store.Get(resource, id); !ok {
		respondWithError(c, errors.NotFound(resource, id))
		return
	}
	items, ok := s.store.List(target)
	if !ok {
		respondWithError(c, errors.NotFound(target, ""))
		return
	}
	opts := parseListQuery(c.Request.URL.Query())
	opts.filters[singular(resource)+"Id"] = []string{id}
	s.respondList(c, opts, items)
}

func (s *Server) create(c *gin.Context) {
	resource := c.Param("resource")
	item, err := decodeItem(c.Request.Body)
	if err != nil {
		respondWithError(c, err)
		return
	}
	created, err := s.store.Create(resource, item)
	if err != nil {
		if stderrors.Is(err, errDuplicateID) {
			respondWithError(c, errors.Conflict(err.Error()))
			return
		}
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) replace(c *gin.Context) {
	resource, id := c.Param("resource"), c.Param("id")
	item, err := decodeItem(c.Request.Body)
	if err != nil {
		respondWithError(c, err)
		return
	}
	updated, ok := s.store.Replace(resource, id, item)
	if !ok {
		respondWithError(c, errors.NotFound(resource, id))
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) remove(c *gin.Context) {
	resource, id := c.Param("resource"), c.Param("id")
	if !s.store.Delete(resource, id) {
		respondWithError(c, errors.NotFound(resource, id))
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) respondList(c *gin.Context, opts listOptions, items []Item) {
	page, total := opts.apply(items)
	if opts.paginate {
		c.Header("X-Total-Count", strconv.Itoa(total))
		c.Header("Access-Control-Expose-Headers", "X-Total-Count")
	}
	c.JSON(http.StatusOK, page)
}

// decodeItem reads a JSON object body, keeping numbers exact. An empty body
// is an empty item.
func decodeItem(r io.Reader) (Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.InvalidInput("body", err.Error())
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Item{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var item Item
	if err := dec.Decode(&item); err != nil {
		return nil, errors.InvalidInput("body", "must be a JSON object")
	}
	if item == nil {
		item = Item{}
	}
	return item, nil
}
