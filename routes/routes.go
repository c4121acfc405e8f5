package routes

// Routes package cung cấp tất cả routing functions cho Center Locator Service
//
// Cấu trúc:
// - api.go: chat routes (/api/*), admin routes (/v1/admin/*), health, metrics
// - web.go: web routes (/)
// - middleware.go: request id, access log, CORS
//
// Sử dụng:
// routes.SetupAllRoutes(router, opts, chatController, adminController, logger)
