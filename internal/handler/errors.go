package handler

import "errors"

var errDataURI = errors.New("无效的文件编码")
