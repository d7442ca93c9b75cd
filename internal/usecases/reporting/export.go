package reporting

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"Identificador", "Conta", "Período", "Moeda",
	"Vendas", "Unidades", "Pedidos", "Itens", "Preço médio",
	"Taxa de comissão", "Comissão por unidade", "Comissão total",
	"Taxa FBA por unidade", "Taxa FBA total",
	"Reembolsos", "Unidades reembolsadas",
	"Disponível", "Em entrada", "Reservado", "Em análise", "Indisponível",
}

func (s *Service) ExportMonthly(ctx context.Context, year, month int, accountID string) ([]byte, error) {
	records, err := s.ListMonthly(ctx, year, month, accountID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logrus.WithError(err).Warn("reporting: erro ao fechar planilha")
		}
	}()

	sheet := domain.PeriodKey(year, month)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("erro ao nomear a aba: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar estilo do cabeçalho: %w", err)
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	for i, record := range records {
		row := i + 2
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), exportRow(record)); err != nil {
			return nil, fmt.Errorf("erro ao escrever linha %d: %w", row, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar planilha: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"period":  sheet,
		"records": len(records),
		"bytes":   buf.Len(),
	}).Info("reporting: planilha de agregados gerada")

	return buf.Bytes(), nil
}

func exportRow(r *domain.MonthlyAggregateRecord) *[]any {
	row := []any{
		r.Identifier, r.AccountID, r.Period(), r.Currency,
		r.TotalSales, r.UnitCount, r.OrderCount, r.OrderItemCount, r.AveragePrice,
		r.ReferralFeeRate, r.ReferralFeePerUnit, r.TotalReferralFee,
		r.FBAFeePerUnit, r.TotalFBAFee,
		r.RefundAmount, r.RefundUnits,
	}

	if inv := r.Inventory; inv != nil {
		row = append(row,
			inv.Fulfillable,
			inv.InboundWorking+inv.InboundShipped+inv.InboundReceiving,
			inv.ReservedOrders+inv.ReservedTransfer+inv.ReservedProcessing,
			inv.Researching.Total,
			inv.Unfulfillable.Total,
		)
	} else {
		row = append(row, "", "", "", "", "")
	}

	return &row
}
