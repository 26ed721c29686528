package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func JSON200(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Status400 answers a failed lookup or malformed mutation with an empty
// body. Missing resources answer 400 here as well, not 404.
func Status400(c *gin.Context) {
	c.Status(http.StatusBadRequest)
}

func Text400(c *gin.Context, message string) {
	c.String(http.StatusBadRequest, message)
}

func JSON403(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, gin.H{"error": message})
}

func Text405(c *gin.Context, message string) {
	c.String(http.StatusMethodNotAllowed, message)
}

func JSON409(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, gin.H{"error": message})
}

func JSON500(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

// MethodsMessage renders the instructional body sent with a 405, joining
// the allowed set as "GET, PUT or DELETE".
func MethodsMessage(methods []string) string {
	var joined string
	switch len(methods) {
	case 0:
		joined = ""
	case 1:
		joined = methods[0]
	default:
		joined = strings.Join(methods[:len(methods)-1], ", ") + " or " + methods[len(methods)-1]
	}
	return "This resource requires " + joined + " method."
}
