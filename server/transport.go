package server

import (
	"context"

	"github.com/effective-security/xlog"
	"github.com/metoro-io/mcp-golang/transport"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const methodToolsCall = "tools/call"

// argsTransport sets empty arguments on tools/call requests without them,
// as the arguments are optional for the tools without parameters.
type argsTransport struct {
	transport.Transport
}

func withDefaultArguments(tr transport.Transport) transport.Transport {
	return &argsTransport{Transport: tr}
}

func (t *argsTransport) SetMessageHandler(handler func(ctx context.Context, message *transport.BaseJsonRpcMessage)) {
	t.Transport.SetMessageHandler(func(ctx context.Context, message *transport.BaseJsonRpcMessage) {
		defaultArguments(ctx, message)
		handler(ctx, message)
	})
}

func defaultArguments(ctx context.Context, message *transport.BaseJsonRpcMessage) {
	if message == nil ||
		message.Type != transport.BaseMessageTypeJSONRPCRequestType ||
		message.JsonRpcRequest == nil ||
		message.JsonRpcRequest.Method != methodToolsCall {
		return
	}

	req := message.JsonRpcRequest
	args := gjson.GetBytes(req.Params, "arguments")
	if args.Exists() && args.Type != gjson.Null {
		return
	}

	params := []byte(req.Params)
	if len(params) == 0 || gjson.ParseBytes(params).Type == gjson.Null {
		params = []byte(`{}`)
	}
	params, err := sjson.SetRawBytes(params, "arguments", []byte(`{}`))
	if err != nil {
		logger.ContextKV(ctx, xlog.DEBUG,
			"reason", "default_arguments",
			"err", err.Error(),
		)
		return
	}
	req.Params = params
}
