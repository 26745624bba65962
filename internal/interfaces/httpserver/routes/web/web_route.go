package web

import (
	"errors"
	"html/template"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"chatterbot-server/internal/domain/chat"
	"chatterbot-server/internal/interfaces/httpserver/handlers/chathandler"
	"chatterbot-server/internal/interfaces/httpserver/responses"
	"chatterbot-server/internal/utils/platformerrors"
)

// maxUploadBytes caps in-memory reads of uploaded files.
const maxUploadBytes = 32 << 20

// WebRoute wires the server-rendered chat pages and their form actions.
type WebRoute struct {
	handler *chathandler.ChatHandler
}

func NewWebRoute(handler *chathandler.ChatHandler) *WebRoute {
	return &WebRoute{handler: handler}
}

// RegisterRouter registers the web routes
func (route *WebRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/", route.root)
	router.GET("/welcome", route.welcome)
	router.GET("/chat", route.chatPage)
	router.GET("/new", route.newChat)
	// Delete is reachable from both plain links and forms.
	router.GET("/delete-chat", route.deleteChat)
	router.POST("/delete-chat", route.deleteChat)
	router.POST("/rename-chat", route.renameChat)
	router.POST("/chatter-bot", route.submit)
}

type conversationSummary struct {
	ID     string
	Name   string
	Active bool
}

type messageView struct {
	Role string
	HTML template.HTML
}

type conversationDetail struct {
	ID       string
	Name     string
	Messages []messageView
}

func (route *WebRoute) root(reqCtx *gin.Context) {
	reqCtx.Redirect(http.StatusSeeOther, "/welcome")
}

func (route *WebRoute) welcome(reqCtx *gin.Context) {
	reqCtx.HTML(http.StatusOK, "landing.html", gin.H{})
}

func (route *WebRoute) chatPage(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	doc, currentID, err := route.handler.TranscriptView(ctx, reqCtx.Query("chat_id"))
	if err != nil {
		responses.HandleError(reqCtx, platformerrors.AsError(ctx, platformerrors.LayerRoute, err, "load transcript"), "failed to load conversations")
		return
	}

	current := doc.Get(currentID)
	reqCtx.HTML(http.StatusOK, "home.html", gin.H{
		"Chats":   summarize(doc, currentID),
		"Current": detail(current),
	})
}

func (route *WebRoute) newChat(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	id, err := route.handler.NewChat(ctx)
	if err != nil {
		responses.HandleError(reqCtx, platformerrors.AsError(ctx, platformerrors.LayerRoute, err, "create conversation"), "failed to create conversation")
		return
	}
	redirectToChat(reqCtx, id)
}

func (route *WebRoute) deleteChat(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	id := reqCtx.PostForm("chat_id")
	if id == "" {
		id = reqCtx.Query("chat_id")
	}

	if err := route.handler.Delete(ctx, id); err != nil {
		responses.HandleError(reqCtx, platformerrors.AsError(ctx, platformerrors.LayerRoute, err, "delete conversation"), "failed to delete conversation")
		return
	}
	reqCtx.Redirect(http.StatusSeeOther, "/chat")
}

func (route *WebRoute) renameChat(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	id := reqCtx.PostForm("chat_id")
	if err := route.handler.Rename(ctx, id, reqCtx.PostForm("new_name")); err != nil {
		responses.HandleError(reqCtx, platformerrors.AsError(ctx, platformerrors.LayerRoute, err, "rename conversation"), "failed to rename conversation")
		return
	}
	redirectToChat(reqCtx, id)
}

func (route *WebRoute) submit(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	upload, err := readUpload(reqCtx)
	if err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "malformed multipart upload")
		return
	}

	targetID, err := route.handler.Submit(ctx, reqCtx.PostForm("chat_id"), reqCtx.PostForm("prompt"), upload)
	if err != nil {
		responses.HandleError(reqCtx, platformerrors.AsError(ctx, platformerrors.LayerRoute, err, "process message"), "failed to process message")
		return
	}
	redirectToChat(reqCtx, targetID)
}

// readUpload pulls the optional multipart file into memory. A missing file
// field or a non-multipart form is not an error; an unparseable multipart
// body is.
func readUpload(reqCtx *gin.Context) (*chathandler.Upload, error) {
	fileHeader, err := reqCtx.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	if fileHeader == nil || fileHeader.Filename == "" {
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, err
	}

	return &chathandler.Upload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func redirectToChat(reqCtx *gin.Context, id string) {
	reqCtx.Redirect(http.StatusSeeOther, "/chat?chat_id="+url.QueryEscape(id))
}

func summarize(doc *chat.Document, currentID string) []conversationSummary {
	summaries := make([]conversationSummary, 0, len(doc.Conversations))
	for _, conv := range doc.Conversations {
		summaries = append(summaries, conversationSummary{
			ID:     conv.ID,
			Name:   conv.Name,
			Active: conv.ID == currentID,
		})
	}
	return summaries
}

func detail(conv *chat.Conversation) conversationDetail {
	views := make([]messageView, 0, len(conv.Messages))
	for _, msg := range conv.Messages {
		views = append(views, messageView{
			Role: string(msg.Role),
			HTML: template.HTML(msg.HTML),
		})
	}
	return conversationDetail{ID: conv.ID, Name: conv.Name, Messages: views}
}
