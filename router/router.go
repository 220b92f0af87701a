package router

import (
	"net/http"

	"lingo-guard/app/controllers"
	"lingo-guard/app/middleware"
)

func New(httpCtrl *controllers.HTTPController, authCtrl *controllers.AuthController, chatCtrl *controllers.ChatController) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", httpCtrl.Ping)

	// API endpoints share the open CORS policy and preflight handling
	mux.Handle("/api/login", middleware.CORS(http.HandlerFunc(authCtrl.Login)))
	mux.Handle("/api/register", middleware.CORS(http.HandlerFunc(authCtrl.Register)))
	mux.Handle("/api/chat", middleware.CORS(http.HandlerFunc(chatCtrl.Chat)))

	return mux
}
