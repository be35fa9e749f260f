// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package service

import (
	"net/http"
	"strings"

	"github.com/simcop2387/usgromana/models"
)

// publicPrefixes bypass every policy check. "/" itself is matched exactly.
var publicPrefixes = []string{
	"/login",
	"/logout",
	"/register",
	"/generate_token",
	"/usgromana",
	"/static",
	"/assets",
	"/favicon",
	"/ws",
	"/extensions/core",
	"/extensions/ComfyUI-Usgromana",
	"/extensions/Usgromana",
}

var (
	queuePrefixes    = []string{"/prompt", "/api/prompt", "/queue", "/api/queue"}
	uploadPrefixes   = []string{"/upload", "/api/upload"}
	workflowPrefixes = []string{"/api/userdata/workflows"}
)

// extensionRule binds a permission key to the path prefixes it guards.
type extensionRule struct {
	permission string
	prefixes   []string
}

// extensionRules is evaluated in order; prefixes match case-insensitively.
var extensionRules = []extensionRule{
	{models.PermSettingsITools, []string{"/extensions/ComfyUI-iTools", "/api/itools"}},
	{models.PermSettingsCrystools, []string{"/extensions/ComfyUI-Crystools", "/api/crystools"}},
	{models.PermSettingsRgthree, []string{"/extensions/rgthree-comfy", "/api/rgthree", "/rgthree"}},
	{models.PermSettingsGallery, []string{"/extensions/comfyui-gallery", "/api/gallery"}},
	{models.PermAccessManager, []string{"/extensions/comfyui-manager", "/api/manager", "/manager"}},
	{models.PermManageExtensions, []string{
		"/api/extensions/apply",
		"/api/settings/Comfy.Extension",
		"/api/settings/Comfy/Extension",
	}},
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func hasAnyPrefixFold(path string, prefixes []string) bool {
	lower := strings.ToLower(path)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func isPublicPath(path string) bool {
	return path == "/" || hasAnyPrefix(path, publicPrefixes)
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func deny(identity models.Identity, code, permission, message string) *models.Denial {
	return &models.Denial{Code: code, Permission: permission, Message: message, Role: identity.Role}
}

// checkRequest applies the path policy in a fixed order: allowlist, queue
// gate, upload gate, workflow mutation gate, extension prefixes, then the
// generic API gate.
func checkRequest(identity models.Identity, method, path string) *models.Denial {
	if isPublicPath(path) {
		return nil
	}

	isQueue := hasAnyPrefix(path, queuePrefixes)
	isUpload := hasAnyPrefix(path, uploadPrefixes)

	if isQueue && !identity.Allowed(models.PermRun) {
		return deny(identity, models.CodeExecutionDenied, models.PermRun, "Execution denied")
	}
	if isUpload && !identity.Allowed(models.PermUpload) {
		return deny(identity, models.CodeUploadDenied, models.PermUpload, "Upload denied")
	}
	if isMutation(method) && hasAnyPrefix(path, workflowPrefixes) && !identity.Allowed(models.PermModifyWorkflows) {
		return deny(identity, models.CodeWorkflowDenied, models.PermModifyWorkflows, "Workflow changes denied")
	}
	for _, rule := range extensionRules {
		if hasAnyPrefixFold(path, rule.prefixes) && !identity.Allowed(rule.permission) {
			return deny(identity, models.CodeExtensionDenied, rule.permission, "Access denied")
		}
	}
	if !isQueue && !isUpload && strings.HasPrefix(path, "/api/") && !identity.Allowed(models.PermAccessAPI) {
		return deny(identity, models.CodeAPIDenied, models.PermAccessAPI, "API access denied")
	}
	return nil
}
