package services

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"
)

// PushDispatcher poste des notifications JSON vers l'endpoint push configuré
// (FCM HTTPv1 ou compatible). Fire-and-forget : la livraison des push n'est
// jamais requise pour la correction du cycle de vie.
type PushDispatcher struct {
	Endpoint string
	Key      string
	Client   *http.Client
}

func NewPushDispatcher() *PushDispatcher {
	return &PushDispatcher{
		Endpoint: os.Getenv("PUSH_ENDPOINT"),
		Key:      os.Getenv("PUSH_SERVER_KEY"),
		Client:   &http.Client{Timeout: 3 * time.Second},
	}
}

// Send envoie (title, body) à une audience par rôle ("drivers", "customers"...).
func (p *PushDispatcher) Send(topic, title, body string, data map[string]string) {
	if p.Endpoint == "" {
		return
	}

	payload := map[string]interface{}{
		"message": map[string]interface{}{
			"topic": topic,
			"notification": map[string]string{
				"title": title,
				"body":  body,
			},
			"data": data,
		},
	}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPost, p.Endpoint, bytes.NewReader(b))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if p.Key != "" {
		req.Header.Set("Authorization", "Bearer "+p.Key)
	}

	res, err := p.Client.Do(req)
	if err != nil {
		log.Printf("⚠️ Push non délivré (%s): %v", topic, err)
		return
	}
	res.Body.Close()
}
