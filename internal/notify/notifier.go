package notify

import (
	"log"
	"net/http"
	"time"
)

// 打刻受理後にLAN内の通知デーモンを突くだけの軽い仕掛け。
// 失敗しても打刻自体には影響させない。

type Notifier struct {
	url    string
	client *http.Client
}

// New: hostport が空なら無効なNotifier（呼んでも何もしない）を返す。
func New(hostport string) *Notifier {
	if hostport == "" {
		return &Notifier{}
	}
	return &Notifier{
		url:    "http://" + hostport + "/notify",
		client: &http.Client{Timeout: 500 * time.Millisecond},
	}
}

func (n *Notifier) EventRecorded() {
	if n == nil || n.url == "" {
		return
	}
	go func() {
		resp, err := n.client.Get(n.url)
		if err != nil {
			log.Printf("[INFO] notifier unreachable: %v", err)
			return
		}
		resp.Body.Close()
	}()
}
