package kube

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"prediction-service/internal/config"
	ports "prediction-service/internal/core/ports/output"
)

const Scheme = "configmap"

var configMapGVR = schema.GroupVersionResource{
	Group:    "",
	Version:  "v1",
	Resource: "configmaps",
}

var (
	ErrInvalidLocation = errors.New("invalid configmap location")
	ErrKeyNotFound     = errors.New("configmap key not found")
)

type configMapSource struct {
	client dynamic.Interface
}

// NewConfigMapSource reads artifacts stored under a ConfigMap key, addressed
// as configmap://<namespace>/<name>/<key>.
func NewConfigMapSource(cfg *config.KubernetesConfig) (ports.ArtifactSource, error) {
	var restCfg *rest.Config
	var err error

	if cfg.InCluster {
		restCfg, err = rest.InClusterConfig()
	} else if cfg.KubeConfigPath != "" {
		restCfg, err = clientcmd.BuildConfigFromFlags("", cfg.KubeConfigPath)
	} else {
		// Try default kubeconfig location
		home, _ := os.UserHomeDir()
		kubeconfig := filepath.Join(home, ".kube", "config")
		restCfg, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
	}
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	client, err := dynamic.NewForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("create dynamic client: %w", err)
	}

	return NewConfigMapSourceWithClient(client), nil
}

func NewConfigMapSourceWithClient(client dynamic.Interface) ports.ArtifactSource {
	return &configMapSource{client: client}
}

func (s *configMapSource) Read(ctx context.Context, location string) ([]byte, error) {
	namespace, name, key, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.Resource(configMapGVR).Namespace(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("get configmap %s/%s: %w", namespace, name, err)
	}

	if data, found, _ := unstructured.NestedString(obj.Object, "data", key); found {
		return []byte(data), nil
	}
	if encoded, found, _ := unstructured.NestedString(obj.Object, "binaryData", key); found {
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("decode configmap %s/%s binaryData %q: %w", namespace, name, key, err)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("%w: %s/%s %q", ErrKeyNotFound, namespace, name, key)
}

// ParseLocation splits configmap://<namespace>/<name>/<key>.
func ParseLocation(location string) (namespace, name, key string, err error) {
	trimmed, ok := strings.CutPrefix(location, Scheme+"://")
	if !ok {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidLocation, location)
	}
	parts := strings.SplitN(trimmed, "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidLocation, location)
	}
	return parts[0], parts[1], parts[2], nil
}
