package middleware

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"
	"github.com/tidwall/gjson"

	"github.com/solutions/hire-cube/internal/common/utils"
	"github.com/solutions/hire-cube/internal/protodef/model"
)

var (
	jwtKey []byte
)

func InitMiddleware(conf utils.Config) {
	jwtKey = []byte(conf.JwtKey)
}

// Authenticate 校验请求者的身份。会话签发在别处，这里只从Bearer token
// 还原出操作者的ID、角色与组织。
func Authenticate(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	fetchActorFromHeader(xl, requestID, c)
}

// AfapAuthenticate 尽力而为的鉴权：优先认邮件链接里的interviewToken，
// 没有再退回Bearer token。面试进入页的候选人通常没有登录态。
func AfapAuthenticate(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	interviewToken := c.PostForm("interviewToken")
	val, err := url.QueryUnescape(interviewToken)
	if err == nil {
		interviewToken = val
	}
	if interviewToken == "" {
		xl.Debugf("no interviewToken in POST form.")
		interviewToken = c.Query("interviewToken")
	}
	if interviewToken != "" {
		decoded, err := base64.StdEncoding.DecodeString(interviewToken)
		if err == nil {
			userID := gjson.GetBytes(decoded, "userId").String()
			role := gjson.GetBytes(decoded, "role").String()
			if userID != "" {
				if role == "" {
					role = string(model.ActorRoleInterviewee)
				}
				c.Set(model.UserIDContextKey, userID)
				c.Set(model.UserRoleContextKey, model.ActorRole(role))
				c.Set(model.TokenSourceContextKey, model.TokenSourceFromInterviewToken)
				xl.Debugf("fetch interviewToken success. userID: %s, role: %s", userID, role)
			} else {
				xl.Debugf("fetch interviewToken fail. interviewToken: %s", interviewToken)
			}
		} else {
			xl.Debugf("decode interviewToken fail. interviewToken: %s", interviewToken)
		}
	}

	_, exist := c.Get(model.UserIDContextKey)
	if !exist {
		fetchActorFromHeader(xl, requestID, c)
	}
}

func fetchActorFromHeader(xl *xlog.Logger, requestID string, c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		xl.Debugf("%s %s: request unauthorized, wrong auth header format", c.Request.Method, c.Request.URL.Path)
		responseErr := model.NewResponseErrorNotLoggedIn()
		resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		c.Abort()
		return
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return jwtKey, nil
	})
	if err != nil || !token.Valid {
		xl.Debugf("%s %s: request unauthorized, error %v", c.Request.Method, c.Request.URL.Path, err)
		responseErr := model.NewResponseErrorBadToken()
		resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		c.Abort()
		return
	}
	userID, _ := claims["userID"].(string)
	role, _ := claims["role"].(string)
	organizationID, _ := claims["organizationID"].(string)
	if userID == "" {
		responseErr := model.NewResponseErrorBadToken()
		resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		c.Abort()
		return
	}
	c.Set(model.UserIDContextKey, userID)
	c.Set(model.UserRoleContextKey, model.ActorRole(role))
	c.Set(model.OrganizationIDContextKey, organizationID)
	c.Set(model.TokenSourceContextKey, model.TokenSourceFromHeader)
}

// ActorRole 从context取出请求者角色。
func ActorRole(c *gin.Context) model.ActorRole {
	val, ok := c.Get(model.UserRoleContextKey)
	if !ok {
		return ""
	}
	role, _ := val.(model.ActorRole)
	return role
}
