package rest

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kbukum/dataprovider/dataprovider"
)

// escapePath escapes each slash-separated segment of a normalized resource
// name, keeping the embedded slashes.
func escapePath(name string) string {
	parts := strings.Split(name, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

// collectionPath is {resource}, relative to the base URL.
func collectionPath(res dataprovider.Resource) (string, error) {
	if res.IsZero() {
		return "", fmt.Errorf("resource name is required")
	}
	return escapePath(res.Name()), nil
}

// recordPath is {resource}/{id}.
func recordPath(res dataprovider.Resource, id dataprovider.Identifier) (string, error) {
	base, err := collectionPath(res)
	if err != nil {
		return "", err
	}
	seg := id.String()
	if seg == "" {
		return "", fmt.Errorf("identifier is required")
	}
	return base + "/" + url.PathEscape(seg), nil
}

// referencePath is {resource}/{id}/{target}.
func referencePath(res dataprovider.Resource, id dataprovider.Identifier, target string) (string, error) {
	base, err := recordPath(res, id)
	if err != nil {
		return "", err
	}
	t := dataprovider.NewResource(target)
	if t.IsZero() {
		return "", fmt.Errorf("target resource is required")
	}
	return base + "/" + escapePath(t.Name()), nil
}

// idQuery repeats the id key once per identifier, in caller order.
func idQuery(ids []dataprovider.Identifier) url.Values {
	return url.Values{"id": dataprovider.IDStrings(ids)}
}
