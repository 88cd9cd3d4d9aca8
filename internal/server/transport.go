package server

import (
	"bufio"
	"net"
	"strings"
	"time"
)

const (
	// 写入超时
	writeWait = 10 * time.Second

	// 单行最大长度
	maxLineSize = 4096
)

// Transport 一条连接的帧收发抽象：一帧即一行
// TCP 与 WebSocket 网关说同一套行协议，上层 Client 不感知差异
type Transport interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
	RemoteAddr() string
}

// tcpTransport 原生 TCP 传输，换行分隔的 UTF-8 文本帧
type tcpTransport struct {
	conn   net.Conn
	reader *bufio.Reader
}

func newTCPTransport(conn net.Conn) *tcpTransport {
	return &tcpTransport{
		conn:   conn,
		reader: bufio.NewReaderSize(conn, maxLineSize),
	}
}

// ReadLine 阻塞读取一整行，流关闭或出错时返回错误
func (t *tcpTransport) ReadLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *tcpTransport) WriteLine(line string) error {
	_ = t.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_, err := t.conn.Write([]byte(line + "\n"))
	return err
}

func (t *tcpTransport) Close() error {
	return t.conn.Close()
}

func (t *tcpTransport) RemoteAddr() string {
	return t.conn.RemoteAddr().String()
}
