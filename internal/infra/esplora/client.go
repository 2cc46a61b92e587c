// Package esplora reads address history from esplora-compatible REST APIs
// such as mempool.space and blockstream.info.
package esplora

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/gabapcia/addresswatch/internal/pkg/logger"
	"github.com/gabapcia/addresswatch/internal/wallet"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrUnexpectedStatus is returned when the API answers with a non-2xx code.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// PageSize is the number of transactions the API returns per page.
const PageSize = 50

type client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	tracer     trace.Tracer
}

var _ wallet.HistoryFetcher = (*client)(nil)

// NewClient returns a client for the API rooted at baseURL, for example
// https://mempool.space/api.
func NewClient(baseURL string, httpClient *retryablehttp.Client) *client {
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tracer:     otel.Tracer("github.com/gabapcia/addresswatch/internal/infra/esplora"),
	}
}

// ScriptHash returns the hex encoded sha256 of a hex encoded script, the key
// esplora indexes scripts by.
func ScriptHash(script string) (string, error) {
	raw, err := hex.DecodeString(script)
	if err != nil {
		return "", fmt.Errorf("decode script: %w", err)
	}

	return hex.EncodeToString(chainhash.HashB(raw)), nil
}

// ScripthashTxs returns one page of the transactions touching script, newest
// first. lastSeen continues after the given txid. A pageSize of zero means
// PageSize.
func (c *client) ScripthashTxs(ctx context.Context, script, lastSeen string, pageSize int) ([]wallet.Tx, error) {
	scriptHash, err := ScriptHash(script)
	if err != nil {
		return nil, err
	}

	if pageSize <= 0 {
		pageSize = PageSize
	}

	query := url.Values{}
	query.Set("max_txs", strconv.Itoa(pageSize))
	if lastSeen != "" {
		query.Set("after_txid", lastSeen)
	}
	endpoint := fmt.Sprintf("%s/scripthash/%s/txs?%s", c.baseURL, scriptHash, query.Encode())

	ctx, span := c.tracer.Start(ctx, "esplora.ScripthashTxs", trace.WithAttributes(
		attribute.String("esplora.scripthash", scriptHash),
		attribute.String("esplora.after_txid", lastSeen),
	))
	defer span.End()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		err := fmt.Errorf("%w: %d", ErrUnexpectedStatus, res.StatusCode)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, err
	}

	var txs []wallet.Tx
	if err := json.NewDecoder(res.Body).Decode(&txs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	span.SetAttributes(attribute.Int("esplora.transactions", len(txs)))
	return txs, nil
}

// FetchAddressHistory pages through the history of script and returns it
// oldest first.
//
// untilTxid and untilHeight bound the number of requests: when set, paging
// stops as soon as the transaction with that txid was seen and a page ended
// with a transaction confirmed below that height.
func (c *client) FetchAddressHistory(ctx context.Context, script, untilTxid string, untilHeight *uint32) ([]wallet.Tx, error) {
	var (
		all          []wallet.Tx
		lastTxid     string
		foundTxid    = untilTxid == ""
		foundHeight  = untilHeight == nil
		limitPaging  = !foundTxid || !foundHeight
		pages        int
		reachedStart bool
	)

	for !reachedStart && (!limitPaging || !foundTxid || !foundHeight) {
		txs, err := c.ScripthashTxs(ctx, script, lastTxid, PageSize)
		if err != nil {
			return nil, err
		}
		pages++

		if !foundTxid {
			for _, tx := range txs {
				if tx.Txid == untilTxid {
					foundTxid = true
					break
				}
			}
		}

		if !foundHeight && len(txs) > 0 {
			last := txs[len(txs)-1]
			foundHeight = last.Status.Confirmed && last.Status.BlockHeight < *untilHeight
		}

		if len(txs) == PageSize {
			lastTxid = txs[len(txs)-1].Txid
		} else {
			reachedStart = true
		}

		all = append(all, txs...)
	}

	logger.Debug(ctx, "fetched address history",
		"esplora.pages", pages,
		"esplora.transactions", len(all),
	)

	slices.Reverse(all)

	return all, nil
}
