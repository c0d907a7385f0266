package services_test

import (
	"strconv"
	"strings"
)

const confirmURL = "http://localhost/api/purchases/confirm-payment"

func repeat(s string, n int) string { return strings.Repeat(s, n) }

func fmtPayPal(id int64) string {
	return "paypal.com/" + strconv.FormatInt(id, 10) + "?redirectUrl=" + confirmURL
}

func fmtPagSeguro(id int64) string {
	return "pagseguro.com?returnId=" + strconv.FormatInt(id, 10) + "&redirectUrl=" + confirmURL
}
