package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
)

const maxImportFileSize = 5 * 1024 * 1024

func (h *BotHandler) showSyncMenu(cq *tgbotapi.CallbackQuery) {
	h.answerCallback(cq.ID, "")
	h.renderScreen(cq.Message.Chat.ID, cq.Message.MessageID, msgSyncChooseTable, syncTableKeyboard())
}

func (h *BotHandler) showSyncConfirm(cq *tgbotapi.CallbackQuery, table string) {
	h.answerCallback(cq.ID, "")
	switch table {
	case "carpets":
		h.renderScreen(cq.Message.Chat.ID, cq.Message.MessageID, msgSyncCarpetsPrompt, syncCarpetsConfirmKeyboard())
	case "sales":
		h.renderScreen(cq.Message.Chat.ID, cq.Message.MessageID, msgSyncSalesPrompt, syncSalesConfirmKeyboard())
	}
}

// runSync executes the chosen sheet reconciliation. The argument is the
// tail of the callback data: "carpets|keep", "carpets|delete" or "sales".
func (h *BotHandler) runSync(ctx context.Context, cq *tgbotapi.CallbackQuery, args string) {
	chatID := cq.Message.Chat.ID

	h.answerCallback(cq.ID, "")
	h.renderScreen(chatID, cq.Message.MessageID, msgSyncStarting, backToMenuKeyboard())

	started := time.Now()
	var (
		result *entity.SyncResult
		err    error
	)
	switch {
	case strings.HasPrefix(args, "carpets"):
		deleteMissing := strings.HasSuffix(args, "|delete")
		result, err = h.syncer.SyncCarpets(ctx, deleteMissing)
	case args == "sales":
		result, err = h.syncer.SyncSales(ctx)
	default:
		return
	}

	if err != nil {
		h.log.Error().Err(err).Str("target", args).Msg("sync failed")
		h.sendMessage(chatID, fmt.Sprintf("❌ Ошибка при синхронизации: %v", err))
		return
	}

	h.log.Info().
		Str("target", args).
		Dur("elapsed", time.Since(started)).
		Int("inserted", result.Inserted).
		Int("updated", result.Updated).
		Msg("sync finished")
	h.sendHTMLChunked(chatID, syncResultText(result))
	h.promptHTML(chatID, msgAdminWelcome, adminMenuKeyboard())
}

func (h *BotHandler) runSalesExport(ctx context.Context, chatID int64) {
	h.sendMessage(chatID, msgExportStarting)

	data, err := h.syncer.ExportSalesWorkbook(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("sales export failed")
		h.sendMessage(chatID, "❌ Ошибка при выгрузке продаж")
		return
	}

	name := fmt.Sprintf("sales_%s.xlsx", time.Now().Format("2006-01-02"))
	if err := h.sendDocument(chatID, name, data, "📤 Выгрузка продаж"); err != nil {
		h.log.Error().Err(err).Msg("sales document send failed")
		h.sendMessage(chatID, "❌ Не удалось отправить файл")
	}
}

func (h *BotHandler) downloadFile(fileID string) ([]byte, error) {
	file, err := h.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}

	fileURL := file.Link(h.bot.Token)
	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func (h *BotHandler) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !h.isAdmin(message.From.ID) {
		h.sendMessage(chatID, "❌ Файлы могут загружать только администраторы")
		return
	}

	doc := message.Document

	if doc.FileSize > maxImportFileSize {
		h.sendMessage(chatID, "❌ Размер файла не должен превышать 5MB")
		return
	}
	if !strings.HasSuffix(doc.FileName, ".xlsx") {
		h.sendMessage(chatID, "❌ Принимаются только Excel файлы (.xlsx)")
		return
	}

	h.sendMessage(chatID, msgImportStarting)

	data, err := h.downloadFile(doc.FileID)
	if err != nil {
		h.log.Error().Err(err).Str("file", doc.FileName).Msg("file download failed")
		h.sendMessage(chatID, "❌ Не удалось загрузить файл")
		return
	}

	result, err := h.syncer.ImportCarpetWorkbook(ctx, data)
	if err != nil {
		h.log.Error().Err(err).Str("file", doc.FileName).Msg("workbook import failed")
		h.sendMessage(chatID, fmt.Sprintf("❌ Ошибка при импорте: %v", err))
		return
	}

	h.log.Info().
		Str("file", doc.FileName).
		Int("inserted", result.Inserted).
		Int("updated", result.Updated).
		Msg("workbook imported")
	h.sendHTMLChunked(chatID, syncResultText(result))
}
