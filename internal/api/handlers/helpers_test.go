package handlers_test

import (
	"net/http"

	gorillaWS "github.com/gorilla/websocket"
)

func gorillaDial(url string) (*gorillaWS.Conn, *http.Response, error) {
	conn, resp, err := gorillaWS.DefaultDialer.Dial(url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	return conn, resp, err
}
