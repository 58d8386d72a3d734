// internal/platform/di/shared/secret_provider_sm.go
package shared

import (
	"context"
	"log"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// ResolveSecretRef resolves "sm://" config references through Secret
// Manager. Accepted forms:
//
//	sm://projects/<project>/secrets/<secret>            (version latest)
//	sm://projects/<project>/secrets/<secret>/versions/<v>
//	sm://<secret>                                       (projectID arg, latest)
//
// Anything else is returned unchanged, so plain env values keep working.
// Resolution failures are logged and fall back to "" rather than the
// raw ref, so an sm:// string never ends up used as a credential.
func ResolveSecretRef(ctx context.Context, sm *secretmanager.Client, projectID, value string) string {
	v := strings.TrimSpace(value)
	if !strings.HasPrefix(v, "sm://") {
		return v
	}
	if sm == nil {
		log.Printf("[shared.secret] WARN: secret ref %q but secretmanager client is unavailable", redactSecretRef(v))
		return ""
	}

	name := strings.TrimPrefix(v, "sm://")
	if !strings.HasPrefix(name, "projects/") {
		name = "projects/" + strings.TrimSpace(projectID) + "/secrets/" + name
	}
	if !strings.Contains(name, "/versions/") {
		name += "/versions/latest"
	}

	resp, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		log.Printf("[shared.secret] WARN: AccessSecretVersion failed (%s): %v", redactSecretRef(name), err)
		return ""
	}
	if resp == nil || resp.Payload == nil {
		log.Printf("[shared.secret] WARN: empty payload (%s)", redactSecretRef(name))
		return ""
	}

	return strings.TrimSpace(string(resp.Payload.Data))
}

func redactSecretRef(s string) string {
	// secret names are fine to log; keep only the last two segments
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) <= 2 {
		return s
	}
	return ".../" + strings.Join(parts[len(parts)-2:], "/")
}
