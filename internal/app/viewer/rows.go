package viewer

import (
	"github.com/charmbracelet/bubbles/table"

	"github.com/thushan/ollaview/internal/core/domain"
)

const (
	ColumnName     = "名称"
	ColumnSize     = "大小"
	ColumnModified = "修改时间"

	RefreshLabel = "刷新列表"
	DialogTitle  = "错误"

	RowNoModels        = "未找到已安装的模型"
	RowConnectionError = "无法连接到 Ollama 服务"
	RowServiceError    = "获取模型列表失败"
	RowErrorPrefix     = "错误: "

	MessageConnection = "无法连接到 Ollama 服务，请确保 Ollama 正在运行"
	MessageService    = "无法连接到 Ollama 服务"
	MessagePrefix     = "发生错误："
)

// Columns are the fixed table headings, in display order
func Columns() []string {
	return []string{ColumnName, ColumnSize, ColumnModified}
}

// ResultRows is what the table shows for the outcome of one fetch: a row per
// record, or a single placeholder row for an empty list or a failure
func ResultRows(list *domain.ModelList, err error) []table.Row {
	if err != nil {
		return []table.Row{failureRow(err)}
	}
	if list.IsEmpty() {
		return []table.Row{{RowNoModels, "", ""}}
	}

	rows := make([]table.Row, 0, list.Len())
	for _, m := range list.Models {
		rows = append(rows, table.Row{m.Name, m.Size, m.Modified})
	}
	return rows
}

func failureRow(err error) table.Row {
	switch domain.KindOf(err) {
	case domain.ErrorKindConnection:
		return table.Row{RowConnectionError, "", ""}
	case domain.ErrorKindService:
		return table.Row{RowServiceError, "", ""}
	default:
		return table.Row{RowErrorPrefix + domain.UserMessage(err), "", ""}
	}
}

// DialogMessage is the category specific text of the error dialog
func DialogMessage(err error) string {
	switch domain.KindOf(err) {
	case domain.ErrorKindConnection:
		return MessageConnection
	case domain.ErrorKindService:
		return MessageService
	default:
		return MessagePrefix + domain.UserMessage(err)
	}
}
